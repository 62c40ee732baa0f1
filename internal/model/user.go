package model

// User is an account reports are filed under. The admin flag is carried as
// plain data; nothing in the API grants admins extra rights.
type User struct {
	Username string `gorm:"primaryKey;size:64" json:"username"`
	Admin    bool   `gorm:"not null" json:"admin"`
}

package model

// Room is a laundry room that machines are installed in. Names are labels,
// not identifiers: two rooms may share a name and only the id is unique.
type Room struct {
	ID          int64  `gorm:"primaryKey" json:"room_id"`
	Name        string `gorm:"size:128;not null" json:"name"`
	Description string `gorm:"size:512" json:"description"`

	// Associations
	Machines []Machine `gorm:"foreignKey:RoomID" json:"-"`
}

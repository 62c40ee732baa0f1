package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ReportType grades how serious a fault report is.
type ReportType string

const (
	ReportTypeOperational ReportType = "operational"
	ReportTypeCaution     ReportType = "caution"
	ReportTypeBroken      ReportType = "broken"
)

// UnmarshalJSON accepts a report type token in any letter case and rejects
// everything that is not a known type.
func (t *ReportType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch ReportType(strings.ToLower(s)) {
	case ReportTypeOperational:
		*t = ReportTypeOperational
	case ReportTypeCaution:
		*t = ReportTypeCaution
	case ReportTypeBroken:
		*t = ReportTypeBroken
	default:
		return fmt.Errorf("unknown report type %q", s)
	}
	return nil
}

// Report is a user-filed statement about the condition of one machine.
// Rows never change after insert except for the archived flag, which moves
// from false to true exactly once.
type Report struct {
	ID               int64      `gorm:"primaryKey" json:"report_id"`
	RoomID           int64      `gorm:"not null;index" json:"room_id"`
	MachineID        string     `gorm:"size:64;not null" json:"machine_id"`
	ReporterUsername string     `gorm:"size:64;not null;index" json:"reporter_username"`
	Type             ReportType `gorm:"column:type;size:16;not null" json:"report_type"`
	Time             time.Time  `gorm:"not null" json:"time"`
	Description      *string    `gorm:"size:1024" json:"description"`
	Archived         bool       `gorm:"not null" json:"archived"`

	// Associations
	Machine  Machine `gorm:"foreignKey:RoomID,MachineID;references:RoomID,MachineID;constraint:OnDelete:CASCADE" json:"-"`
	Reporter User    `gorm:"foreignKey:ReporterUsername;references:Username;constraint:OnDelete:CASCADE" json:"-"`
}

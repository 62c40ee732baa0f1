package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MachineType says what kind of appliance a machine is.
type MachineType string

const (
	MachineTypeWasher MachineType = "washer"
	MachineTypeDryer  MachineType = "dryer"
)

// UnmarshalJSON accepts a machine type token in any letter case and rejects
// everything that is not a known type.
func (t *MachineType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch MachineType(strings.ToLower(s)) {
	case MachineTypeWasher:
		*t = MachineTypeWasher
	case MachineTypeDryer:
		*t = MachineTypeDryer
	default:
		return fmt.Errorf("unknown machine type %q", s)
	}
	return nil
}

// Machine is a single appliance installed in a room. Machine ids are only
// unique within their room, so the primary key is (room_id, machine_id).
type Machine struct {
	RoomID    int64       `gorm:"primaryKey;autoIncrement:false" json:"room_id"`
	MachineID string      `gorm:"primaryKey;size:64" json:"machine_id"`
	Type      MachineType `gorm:"column:type;size:16;not null" json:"machine_type"`

	// Associations
	Room Room `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

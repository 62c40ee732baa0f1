package store

import (
	"context"

	"gorm.io/gorm"

	"laundry-report-backend/internal/model"
)

// MachineExists reports whether the machine identified by (roomID,
// machineID) is present.
func (s *gormStore) MachineExists(ctx context.Context, roomID int64, machineID string) (bool, error) {
	var probe model.Machine
	err := s.db.WithContext(ctx).
		Select("machine_id").
		Where("room_id = ? AND machine_id = ?", roomID, machineID).
		Take(&probe).Error
	return exists(err)
}

func (s *gormStore) ListMachines(ctx context.Context) ([]model.Machine, error) {
	var machines []model.Machine
	if err := s.db.WithContext(ctx).Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

func (s *gormStore) GetMachine(ctx context.Context, roomID int64, machineID string) (model.Machine, error) {
	var machine model.Machine
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND machine_id = ?", roomID, machineID).
		Take(&machine).Error
	if err != nil {
		return model.Machine{}, classify(err)
	}
	return machine, nil
}

func (s *gormStore) CreateMachine(ctx context.Context, machine *model.Machine) error {
	return classify(s.db.WithContext(ctx).Create(machine).Error)
}

// DeleteMachine removes a machine and returns the removed row. Reports
// filed against it go with it via ON DELETE CASCADE.
func (s *gormStore) DeleteMachine(ctx context.Context, roomID int64, machineID string) (model.Machine, error) {
	var machine model.Machine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ? AND machine_id = ?", roomID, machineID).Take(&machine).Error; err != nil {
			return err
		}
		return tx.Where("room_id = ? AND machine_id = ?", roomID, machineID).Delete(&model.Machine{}).Error
	})
	if err != nil {
		return model.Machine{}, classify(err)
	}
	return machine, nil
}

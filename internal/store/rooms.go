package store

import (
	"context"

	"gorm.io/gorm"

	"laundry-report-backend/internal/model"
)

// RoomExists reports whether a room with the given id is present.
func (s *gormStore) RoomExists(ctx context.Context, roomID int64) (bool, error) {
	var probe model.Room
	err := s.db.WithContext(ctx).Select("id").Where("id = ?", roomID).Take(&probe).Error
	return exists(err)
}

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, roomID int64) (model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		return model.Room{}, classify(err)
	}
	return room, nil
}

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	return classify(s.db.WithContext(ctx).Create(room).Error)
}

// DeleteRoom removes a room and returns the removed row. Lookup and delete
// run in one transaction so the caller gets exactly the row that was
// deleted. Machines and reports in the room go with it via ON DELETE
// CASCADE.
func (s *gormStore) DeleteRoom(ctx context.Context, roomID int64) (model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, roomID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Room{}, roomID).Error
	})
	if err != nil {
		return model.Room{}, classify(err)
	}
	return room, nil
}

func (s *gormStore) ListRoomMachines(ctx context.Context, roomID int64) ([]model.Machine, error) {
	var machines []model.Machine
	if err := s.db.WithContext(ctx).Where("room_id = ?", roomID).Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

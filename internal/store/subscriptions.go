package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"laundry-report-backend/internal/model"
)

// UpsertSubscription saves a push subscription keyed by endpoint and
// replaces its room selection with roomIDs. Room ids that do not exist are
// silently dropped from the selection.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription, roomIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(sub).Error; err != nil {
			return err
		}

		var rooms []*model.Room
		if len(roomIDs) > 0 {
			if err := tx.Find(&rooms, roomIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(sub).Association("Rooms").Replace(rooms)
	})
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).
		Preload("Rooms").
		Where("endpoint = ?", endpoint).
		Take(&sub).Error
	if err != nil {
		return model.PushSubscription{}, classify(err)
	}
	return sub, nil
}

// DeleteSubscription removes a subscription. Deleting an endpoint that was
// never registered is not an error.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&model.PushSubscription{}).Error
}

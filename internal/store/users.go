package store

import (
	"context"

	"gorm.io/gorm"

	"laundry-report-backend/internal/model"
)

// UserExists reports whether a user with the given username is present.
func (s *gormStore) UserExists(ctx context.Context, username string) (bool, error) {
	var probe model.User
	err := s.db.WithContext(ctx).Select("username").Where("username = ?", username).Take(&probe).Error
	return exists(err)
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) GetUser(ctx context.Context, username string) (model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error; err != nil {
		return model.User{}, classify(err)
	}
	return user, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return classify(s.db.WithContext(ctx).Create(user).Error)
}

// DeleteUser removes a user and returns the removed row. Reports filed by
// the user go with it via ON DELETE CASCADE.
func (s *gormStore) DeleteUser(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Take(&user).Error; err != nil {
			return err
		}
		return tx.Where("username = ?", username).Delete(&model.User{}).Error
	})
	if err != nil {
		return model.User{}, classify(err)
	}
	return user, nil
}

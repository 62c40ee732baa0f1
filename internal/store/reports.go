package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"laundry-report-backend/internal/model"
)

// ReportExists reports whether a report with the given id is present.
func (s *gormStore) ReportExists(ctx context.Context, reportID int64) (bool, error) {
	var probe model.Report
	err := s.db.WithContext(ctx).Select("id").Where("id = ?", reportID).Take(&probe).Error
	return exists(err)
}

func (s *gormStore) ListReports(ctx context.Context, archived bool) ([]model.Report, error) {
	var reports []model.Report
	if err := s.db.WithContext(ctx).Where("archived = ?", archived).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *gormStore) GetReport(ctx context.Context, reportID int64) (model.Report, error) {
	var report model.Report
	if err := s.db.WithContext(ctx).First(&report, reportID).Error; err != nil {
		return model.Report{}, classify(err)
	}
	return report, nil
}

// CreateReport inserts a new report. The submission timestamp is assigned
// here, once, in UTC, and every report starts out unarchived regardless of
// what the caller put in those fields.
func (s *gormStore) CreateReport(ctx context.Context, report *model.Report) error {
	report.Time = time.Now().UTC()
	report.Archived = false
	return classify(s.db.WithContext(ctx).Create(report).Error)
}

// DeleteReport removes a report and returns the removed row.
func (s *gormStore) DeleteReport(ctx context.Context, reportID int64) (model.Report, error) {
	var report model.Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, reportID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Report{}, reportID).Error
	})
	if err != nil {
		return model.Report{}, classify(err)
	}
	return report, nil
}

// ArchiveReport flips the archived flag to true and returns the updated
// row. Archiving an already archived report is a no-op that still returns
// the row.
func (s *gormStore) ArchiveReport(ctx context.Context, reportID int64) (model.Report, error) {
	var report model.Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, reportID).Error; err != nil {
			return err
		}
		return tx.Model(&report).Update("archived", true).Error
	})
	if err != nil {
		return model.Report{}, classify(err)
	}
	return report, nil
}

func (s *gormStore) ListRoomReports(ctx context.Context, roomID int64, archived bool) ([]model.Report, error) {
	var reports []model.Report
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND archived = ?", roomID, archived).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *gormStore) ListMachineReports(ctx context.Context, roomID int64, machineID string, archived bool) ([]model.Report, error) {
	var reports []model.Report
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND machine_id = ? AND archived = ?", roomID, machineID, archived).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *gormStore) ListUserReports(ctx context.Context, username string, archived bool) ([]model.Report, error) {
	var reports []model.Report
	err := s.db.WithContext(ctx).
		Where("reporter_username = ? AND archived = ?", username, archived).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

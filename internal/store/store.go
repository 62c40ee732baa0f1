package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"laundry-report-backend/internal/model"
)

// Tagged storage errors. Handlers branch on these with errors.Is instead of
// inspecting driver error strings, so the HTTP mapping stays the same across
// database backends.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means an insert collided with an existing unique key.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidReference means a write pointed at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// Store defines the interface for all database operations.
type Store interface {
	// Existence probes
	RoomExists(ctx context.Context, roomID int64) (bool, error)
	MachineExists(ctx context.Context, roomID int64, machineID string) (bool, error)
	UserExists(ctx context.Context, username string) (bool, error)
	ReportExists(ctx context.Context, reportID int64) (bool, error)

	// Rooms
	ListRooms(ctx context.Context) ([]model.Room, error)
	GetRoom(ctx context.Context, roomID int64) (model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	DeleteRoom(ctx context.Context, roomID int64) (model.Room, error)
	ListRoomMachines(ctx context.Context, roomID int64) ([]model.Machine, error)

	// Machines
	ListMachines(ctx context.Context) ([]model.Machine, error)
	GetMachine(ctx context.Context, roomID int64, machineID string) (model.Machine, error)
	CreateMachine(ctx context.Context, machine *model.Machine) error
	DeleteMachine(ctx context.Context, roomID int64, machineID string) (model.Machine, error)

	// Users
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, username string) (model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, username string) (model.User, error)

	// Reports
	ListReports(ctx context.Context, archived bool) ([]model.Report, error)
	GetReport(ctx context.Context, reportID int64) (model.Report, error)
	CreateReport(ctx context.Context, report *model.Report) error
	DeleteReport(ctx context.Context, reportID int64) (model.Report, error)
	ArchiveReport(ctx context.Context, reportID int64) (model.Report, error)
	ListRoomReports(ctx context.Context, roomID int64, archived bool) ([]model.Report, error)
	ListMachineReports(ctx context.Context, roomID int64, machineID string, archived bool) ([]model.Report, error)
	ListUserReports(ctx context.Context, username string, archived bool) ([]model.Report, error)

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription, roomIDs []int64) error
	GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying GORM handle for migrations and tests.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// classify maps GORM's translated errors onto the store's tagged variants.
// Errors it does not recognize pass through unchanged and are treated as
// plain storage failures by callers.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidReference
	default:
		return err
	}
}

// exists folds the result of a single-row probe into a boolean, treating
// "no rows" as false rather than an error.
func exists(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

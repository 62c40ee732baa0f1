package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"laundry-report-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_ExistenceProbes(t *testing.T) {
	testCases := []struct {
		name             string
		mockExpectations func(mock sqlmock.Sqlmock)
		probe            func(s Store) (bool, error)
		expected         bool
		expectedErr      bool
	}{
		{
			name: "room present",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "rooms"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			},
			probe: func(s Store) (bool, error) {
				return s.RoomExists(context.Background(), 1)
			},
			expected: true,
		},
		{
			name: "room absent",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "rooms"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			probe: func(s Store) (bool, error) {
				return s.RoomExists(context.Background(), 404)
			},
			expected: false,
		},
		{
			name: "machine present",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "machine_id" FROM "machines"`)).
					WillReturnRows(sqlmock.NewRows([]string{"machine_id"}).AddRow("A"))
			},
			probe: func(s Store) (bool, error) {
				return s.MachineExists(context.Background(), 1, "A")
			},
			expected: true,
		},
		{
			name: "user absent",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "username" FROM "users"`)).
					WillReturnRows(sqlmock.NewRows([]string{"username"}))
			},
			probe: func(s Store) (bool, error) {
				return s.UserExists(context.Background(), "ghost")
			},
			expected: false,
		},
		{
			name: "report probe fails",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "reports"`)).
					WillReturnError(errors.New("connection reset"))
			},
			probe: func(s Store) (bool, error) {
				return s.ReportExists(context.Background(), 1)
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			store := NewGormStore(gormDB)

			tc.mockExpectations(mock)

			present, err := tc.probe(store)
			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, present)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Unique and foreign key violations surface from the driver as translated
// GORM errors and must come out of the store as the tagged variants.
func TestGormStore_ConstraintClassification(t *testing.T) {
	t.Run("duplicate machine", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "machines"`)).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		err := store.CreateMachine(context.Background(), &model.Machine{
			RoomID: 1, MachineID: "A", Type: model.MachineTypeWasher,
		})
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate user", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		err := store.CreateUser(context.Background(), &model.User{Username: "admin"})
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("report references missing row", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reports"`)).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		mock.ExpectRollback()

		err := store.CreateReport(context.Background(), &model.Report{
			RoomID: 1, MachineID: "A", ReporterUsername: "ghost", Type: model.ReportTypeBroken,
		})
		assert.ErrorIs(t, err, ErrInvalidReference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStore_ArchiveReport(t *testing.T) {
	reportColumns := []string{
		"id", "room_id", "machine_id", "reporter_username", "type", "time", "description", "archived",
	}

	t.Run("flips the archived flag", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reports"`)).
			WillReturnRows(sqlmock.NewRows(reportColumns).
				AddRow(7, 1, "A", "admin", "broken", time.Now().UTC(), nil, false))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reports" SET "archived"`)).
			WithArgs(true, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		report, err := store.ArchiveReport(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, report.Archived)
		assert.Equal(t, int64(7), report.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing report", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reports"`)).
			WillReturnRows(sqlmock.NewRows(reportColumns))
		mock.ExpectRollback()

		_, err := store.ArchiveReport(context.Background(), 404)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStore_DeleteRoom(t *testing.T) {
	t.Run("returns the deleted row", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "rooms"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
				AddRow(3, "Room 3", "Basement"))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "rooms"`)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		room, err := store.DeleteRoom(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Room 3", room.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing room", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "rooms"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))
		mock.ExpectRollback()

		_, err := store.DeleteRoom(context.Background(), 404)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

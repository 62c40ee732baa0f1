package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"laundry-report-backend/internal/model"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

var reportColumns = []string{
	"id", "room_id", "machine_id", "reporter_username", "type", "time", "description", "archived",
}

func TestWorkerPool_Dispatch(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	// Dispatch a job
	wp.Dispatch(123)

	// Check if the job is in the channel
	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchDropsWhenFull(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	// No workers are running, so the second dispatch must not block.
	wp.Dispatch(1)
	wp.Dispatch(2)

	assert.Equal(t, 1, len(wp.jobs))
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	// --- Test Case: One subscription found, notification sent ---
	t.Run("pushes a report to room subscribers", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		reportID := int64(7)
		subscription := model.PushSubscription{
			Endpoint: "https://example.com/push",
			P256DH:   "test_p256dh",
			Auth:     "test_auth",
		}

		// Set up the mock sender
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				assert.Equal(t, "https://example.com/push", sub.Endpoint)
				assert.Equal(t, "Machine A in Room 1 was reported broken: No heat", string(payload))
				wg.Done()
				return &http.Response{
					StatusCode: http.StatusCreated,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		// Mock database queries, in worker order: report, subscriptions, room.
		mock.ExpectQuery(`SELECT \* FROM "reports" WHERE "reports"\."id" = \$1`).
			WithArgs(reportID, 1).
			WillReturnRows(sqlmock.NewRows(reportColumns).
				AddRow(reportID, 1, "A", "admin", "broken", time.Now(), "No heat", false))

		mock.ExpectQuery(`SELECT .* FROM "push_subscriptions".*JOIN .*subscription_room_mapping.*WHERE .*srm\.room_id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
				AddRow(subscription.Endpoint, subscription.P256DH, subscription.Auth, time.Now()))

		mock.ExpectQuery(`SELECT "name" FROM "rooms" WHERE "rooms"\."id" = \$1 ORDER BY "rooms"\."id" LIMIT \$[0-9]+`).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Room 1"))

		wp.Dispatch(reportID)
		wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// --- Test Case: Subscription expired, should be deleted ---
	t.Run("deletes expired subscription", func(t *testing.T) {
		reportID := int64(8)
		subscription := model.PushSubscription{
			Endpoint: "https://example.com/expired",
			P256DH:   "test_p256dh_expired",
			Auth:     "test_auth_expired",
		}

		// Set up the mock sender to return a 410 Gone status
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusGone,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		mock.ExpectQuery(`SELECT \* FROM "reports" WHERE "reports"\."id" = \$1`).
			WithArgs(reportID, 1).
			WillReturnRows(sqlmock.NewRows(reportColumns).
				AddRow(reportID, 1, "A", "admin", "caution", time.Now(), nil, false))

		mock.ExpectQuery(`SELECT .* FROM "push_subscriptions".*JOIN .*subscription_room_mapping.*WHERE .*srm\.room_id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
				AddRow(subscription.Endpoint, subscription.P256DH, subscription.Auth, time.Now()))

		mock.ExpectQuery(`SELECT "name" FROM "rooms" WHERE "rooms"\."id" = \$1 ORDER BY "rooms"\."id" LIMIT \$[0-9]+`).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Room 1"))

		// Expect the delete operation
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "push_subscriptions" WHERE "push_subscriptions"."endpoint" = \$1`).
			WithArgs(subscription.Endpoint).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		wp.Dispatch(reportID)

		// A short sleep to allow the worker to process the job
		time.Sleep(100 * time.Millisecond)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// --- Test Case: Room lookup fails, fallback to room id ---
	t.Run("falls back to room id when lookup fails", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		reportID := int64(9)
		subscription := model.PushSubscription{
			Endpoint: "https://example.com/fallback",
			P256DH:   "test_p256dh_fallback",
			Auth:     "test_auth_fallback",
		}

		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				assert.Equal(t, "https://example.com/fallback", sub.Endpoint)
				assert.Equal(t, "Machine B in room 2 was reported caution", string(payload))
				wg.Done()
				return &http.Response{
					StatusCode: http.StatusCreated,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		mock.ExpectQuery(`SELECT \* FROM "reports" WHERE "reports"\."id" = \$1`).
			WithArgs(reportID, 1).
			WillReturnRows(sqlmock.NewRows(reportColumns).
				AddRow(reportID, 2, "B", "admin", "caution", time.Now(), nil, false))

		mock.ExpectQuery(`SELECT .* FROM "push_subscriptions".*JOIN .*subscription_room_mapping.*WHERE .*srm\.room_id = \$1`).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
				AddRow(subscription.Endpoint, subscription.P256DH, subscription.Auth, time.Now()))

		mock.ExpectQuery(`SELECT "name" FROM "rooms" WHERE "rooms"\."id" = \$1 ORDER BY "rooms"\."id" LIMIT \$[0-9]+`).
			WithArgs(2, 1).
			WillReturnError(fmt.Errorf("room not found"))

		wp.Dispatch(reportID)
		wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

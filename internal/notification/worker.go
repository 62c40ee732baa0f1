package notification

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"laundry-report-backend/internal/metrics"
	"laundry-report-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers that push freshly submitted fault
// reports to the subscribers of the affected room.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size), // Buffered channel
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	slog.Debug("notification worker started", "worker", id)
	for {
		select {
		case reportID := <-wp.jobs:
			wp.sendNotificationsForReport(ctx, reportID)
		case <-ctx.Done():
			slog.Debug("notification worker shutting down", "worker", id)
			return
		}
	}
}

// Dispatch queues a report for push delivery. The queue is bounded; when it
// is full the job is dropped instead of stalling the request handler that
// submitted the report.
func (wp *WorkerPool) Dispatch(reportID int64) {
	select {
	case wp.jobs <- reportID:
	default:
		slog.Warn("notification queue full, dropping job", "report_id", reportID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// sendNotificationsForReport loads a report and pushes it to every
// subscription attached to the report's room.
func (wp *WorkerPool) sendNotificationsForReport(ctx context.Context, reportID int64) {
	var report model.Report
	if err := wp.db.WithContext(ctx).First(&report, reportID).Error; err != nil {
		slog.Error("failed to load report for notification", "report_id", reportID, "error", err)
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_room_mapping srm ON srm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("srm.room_id = ?", report.RoomID).
		Find(&subscriptions).Error
	if err != nil {
		slog.Error("failed to load subscriptions for room", "room_id", report.RoomID, "error", err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	var room model.Room
	roomLabel := fmt.Sprintf("room %d", report.RoomID)
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&room, report.RoomID).Error; err != nil {
		slog.Warn("failed to load room for notification", "room_id", report.RoomID, "error", err)
	} else if room.Name != "" {
		roomLabel = room.Name
	}

	message := fmt.Sprintf("Machine %s in %s was reported %s", report.MachineID, roomLabel, report.Type)
	if report.Description != nil && *report.Description != "" {
		message = fmt.Sprintf("%s: %s", message, *report.Description)
	}

	slog.Info("sending push notifications",
		"report_id", reportID, "room_id", report.RoomID, "subscriptions", len(subscriptions))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	// Manually construct the webpush.Subscription object
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		metrics.PushNotificationsFailed.Inc()
		slog.Error("failed to send notification", "endpoint", sub.Endpoint, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.PushNotificationsSent.Inc()
	} else {
		metrics.PushNotificationsFailed.Inc()
	}

	// Push services answer 410 Gone for subscriptions that no longer exist.
	if resp.StatusCode == http.StatusGone {
		slog.Info("deleting expired subscription", "endpoint", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			slog.Error("failed to delete expired subscription", "endpoint", sub.Endpoint, "error", err)
		}
	}
}

package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"laundry-report-backend/internal/store"
)

// ReportNotifier dispatches freshly submitted reports for push delivery.
type ReportNotifier interface {
	Dispatch(reportID int64)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	notifier ReportNotifier
}

// NewHandler creates a new API handler. notifier may be nil when push
// delivery is not configured; report submission then skips dispatching.
func NewHandler(s store.Store, webpushOptions *webpush.Options, notifier ReportNotifier) *Handler {
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		notifier: notifier,
	}
}

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"laundry-report-backend/config"
	"laundry-report-backend/internal/mw"
	"laundry-report-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, notifier ReportNotifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger(slog.Default()), mw.Metrics())

	handler := NewHandler(s, webpushOptions, notifier)

	// Operational endpoints stay outside the rate limiter and the cache.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize middleware
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// One shared response cache for every resource group. A successful
	// write through any of them flushes it, which keeps cross-resource
	// listings (such as room-scoped report listings) coherent.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	room := r.Group("/room")
	room.Use(rateLimiter, caching)
	{
		room.GET("/", handler.ListRooms)
		room.POST("/", handler.CreateRoom)
		room.GET("/:room_id", handler.GetRoom)
		room.DELETE("/:room_id", handler.DeleteRoom)
		room.GET("/:room_id/machines", handler.ListRoomMachines)
		room.GET("/:room_id/reports", handler.ListRoomReports)
		room.GET("/:room_id/reports/archived", handler.ListRoomArchivedReports)
	}

	machine := r.Group("/machine")
	machine.Use(rateLimiter, caching)
	{
		machine.GET("/", handler.ListMachines)
		machine.POST("/", handler.CreateMachine)
		machine.GET("/:room_id/:machine_id", handler.GetMachine)
		machine.DELETE("/:room_id/:machine_id", handler.DeleteMachine)
		machine.GET("/:room_id/:machine_id/reports", handler.ListMachineReports)
		machine.GET("/:room_id/:machine_id/reports/archived", handler.ListMachineArchivedReports)
	}

	user := r.Group("/user")
	user.Use(rateLimiter, caching)
	{
		user.GET("/", handler.ListUsers)
		user.POST("/", handler.CreateUser)
		user.GET("/:username", handler.GetUser)
		user.DELETE("/:username", handler.DeleteUser)
		user.GET("/:username/reports", handler.ListUserReports)
		user.GET("/:username/reports/archived", handler.ListUserArchivedReports)
	}

	report := r.Group("/report")
	report.Use(rateLimiter, caching)
	{
		report.GET("/", handler.ListReports)
		report.POST("/", handler.SubmitReport)
		report.GET("/archived", handler.ListArchivedReports)
		report.GET("/:report_id", handler.GetReport)
		report.DELETE("/:report_id", handler.DeleteReport)
		report.POST("/archive", handler.ArchiveReport)
	}

	subscriptions := r.Group("/subscriptions")
	subscriptions.Use(rateLimiter)
	{
		subscriptions.GET("", handler.GetSubscription)
		subscriptions.PUT("", handler.PutSubscription)
		subscriptions.DELETE("", handler.DeleteSubscription)
	}

	r.GET("/vapid_public_key", rateLimiter, handler.GetVAPIDPublicKey)

	return r
}

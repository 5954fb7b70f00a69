package routes

import (
	"time"

	"github.com/chaiteam/chaiteam-backend/internal/config"
	"github.com/chaiteam/chaiteam-backend/internal/handlers"
	"github.com/chaiteam/chaiteam-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	groupHandler *handlers.GroupHandler,
	batchHandler *handlers.BatchHandler,
	noticeHandler *handlers.NoticeHandler,
	activityHandler *handlers.ActivityHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Groups — the membership engine surface (JWT required)
	groups := api.Group("/groups", middleware.JWTProtected(cfg))
	groups.Post("/", middleware.BatchValidity(db), groupHandler.CreateGroup)
	groups.Get("/", groupHandler.ListGroups)
	groups.Get("/me", groupHandler.GetMyGroup)
	groups.Get("/:groupId", groupHandler.GetGroup)
	groups.Put("/:groupId", groupHandler.UpdateGroup)
	groups.Delete("/:groupId", groupHandler.DisbandGroup)
	groups.Post("/:groupId/apply", groupHandler.ApplyToJoin)
	groups.Post("/:groupId/members", groupHandler.AddMember)
	groups.Post("/:groupId/leave", groupHandler.LeaveGroup)
	groups.Post("/:groupId/kick", groupHandler.KickMember)
	groups.Get("/:groupId/applications", groupHandler.ListGroupApplications)
	groups.Post("/:groupId/applications/:userId/reject", groupHandler.RejectApplication)

	// Applications — caller's own
	api.Get("/applications", middleware.JWTProtected(cfg), groupHandler.ListMyApplications)
	api.Delete("/applications", middleware.JWTProtected(cfg), groupHandler.WithdrawApplication)

	// Notices — read side
	api.Get("/notices", middleware.JWTProtected(cfg), noticeHandler.ListNotices)
	api.Get("/notices/:noticeId", middleware.JWTProtected(cfg), noticeHandler.GetNotice)

	// Activity feeds
	api.Get("/activities/me", middleware.JWTProtected(cfg), activityHandler.ListMyActivities)
	api.Get("/activities/groups/:groupId", middleware.JWTProtected(cfg), activityHandler.ListGroupActivities)

	// Admin panel (JWT + admin)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/batches", batchHandler.CreateBatch)
	admin.Get("/batches", batchHandler.ListBatches)
	admin.Get("/batches/:batchId", batchHandler.GetBatch)
	admin.Put("/batches/:batchId", batchHandler.UpdateBatch)
	admin.Post("/batches/:batchId/members", batchHandler.UploadMembers)
	admin.Get("/batches/:batchId/members", batchHandler.ListBatchMembers)
	admin.Post("/notices", noticeHandler.CreateNotice)
	admin.Put("/notices/:noticeId", noticeHandler.UpdateNotice)
	admin.Delete("/notices/:noticeId", noticeHandler.DeleteNotice)
	admin.Get("/activities", activityHandler.ListAdminActivities)
	admin.Get("/dashboard", dashboardHandler.Stats)
}

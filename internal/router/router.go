package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edustack/schoolhub/internal/config"
	"github.com/edustack/schoolhub/internal/handler"
	"github.com/edustack/schoolhub/internal/middleware"
	"github.com/edustack/schoolhub/internal/response"
	"github.com/edustack/schoolhub/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Course    *handler.CourseHandler
	Classroom *handler.ClassroomHandler
	Summary   *handler.SummaryHandler
	Export    *handler.ExportHandler
	Events    *handler.EventsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// The route paths match what the admin console calls: unversioned /api/...
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID and metrics middleware globally.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Metrics())

	// Health check and prometheus metrics.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── Auth (Public, Rate Limited) ───────────────────────────────────
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	auth := router.Group("/api/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
	}

	// ─── Admin API (JWT, admin role) ───────────────────────────────────
	api := router.Group("/api")
	api.Use(middleware.RequireAdminJWT(authService))
	{
		// User management
		api.GET("/users", handlers.User.ListUsers)
		api.POST("/users", handlers.User.CreateUser)
		api.PUT("/users/:id", handlers.User.UpdateUser)
		api.DELETE("/users/:id", handlers.User.DeleteUser)

		// Course management
		api.GET("/courses", handlers.Course.ListCourses)
		api.POST("/courses", handlers.Course.CreateCourse)
		api.PUT("/courses/:id", handlers.Course.UpdateCourse)
		api.DELETE("/courses/:id", handlers.Course.DeleteCourse)

		// Classroom management and roster membership
		api.GET("/classrooms", handlers.Classroom.ListClassrooms)
		api.POST("/classrooms", handlers.Classroom.CreateClassroom)
		api.PUT("/classrooms/:id", handlers.Classroom.UpdateClassroom)
		api.DELETE("/classrooms/:id", handlers.Classroom.DeleteClassroom)
		api.POST("/classrooms/:id/add-student", handlers.Classroom.AddStudent)
		api.POST("/classrooms/:id/remove-student", handlers.Classroom.RemoveStudent)

		// Admin summary
		api.GET("/admin/summary", handlers.Summary.GetSummary)
		api.GET("/admin/summary/export", handlers.Export.ExportSummary)
		api.GET("/admin/events", handlers.Events.StreamEvents)
	}

	return router
}

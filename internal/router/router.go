package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pvmlabs/examgate-backend/internal/config"
	"github.com/pvmlabs/examgate-backend/internal/handler"
	"github.com/pvmlabs/examgate-backend/internal/middleware"
	"github.com/pvmlabs/examgate-backend/internal/response"
	"github.com/pvmlabs/examgate-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth           *handler.AuthHandler
	Registration   *handler.RegistrationHandler
	Window         *handler.WindowHandler
	Exam           *handler.ExamHandler
	AdminQuestion  *handler.AdminQuestionHandler
	AdminCandidate *handler.AdminCandidateHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally. The exam paper is the main payload
	// that benefits.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		// The schedule changes at most once per exam cycle; let clients
		// cache it briefly.
		publicAPI.GET("/window", middleware.CacheControl(30), handlers.Window.GetWindow)
		publicAPI.POST("/register", handlers.Registration.Register)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/candidate/login", handlers.Auth.CandidateLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
	}

	// ─── 2. Candidate Group (JWT + Single Device) ──────────────────────
	candidateAPI := router.Group("/api/v1/candidate")
	candidateAPI.Use(
		middleware.RequireCandidateJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		candidateAPI.GET("/me", handlers.Auth.GetCandidateProfile)
		candidateAPI.POST("/logout", handlers.Auth.CandidateLogout)

		candidateAPI.POST("/exam/start", handlers.Exam.Start)
		candidateAPI.GET("/exam/paper", handlers.Exam.GetPaper)
		candidateAPI.POST("/exam/submit", handlers.Exam.Submit)
		candidateAPI.GET("/exam/result", handlers.Exam.GetResult)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Question bank
		adminAPI.GET("/questions", handlers.AdminQuestion.List)
		adminAPI.POST("/questions", handlers.AdminQuestion.Create)
		adminAPI.GET("/questions/:id", handlers.AdminQuestion.Get)
		adminAPI.PUT("/questions/:id", handlers.AdminQuestion.Update)
		adminAPI.DELETE("/questions/:id", handlers.AdminQuestion.Delete)

		// Candidates and results
		adminAPI.GET("/candidates", handlers.AdminCandidate.List)
		adminAPI.GET("/candidates/:id/attempt", handlers.AdminCandidate.GetAttempt)
		adminAPI.POST("/candidates/:id/reset-session", handlers.AdminCandidate.ResetSession)
	}

	return router
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pvmlabs/examgate-backend/internal/clock"
	"github.com/pvmlabs/examgate-backend/internal/config"
	"github.com/pvmlabs/examgate-backend/internal/database"
	"github.com/pvmlabs/examgate-backend/internal/handler"
	"github.com/pvmlabs/examgate-backend/internal/logger"
	"github.com/pvmlabs/examgate-backend/internal/mailer"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/pvmlabs/examgate-backend/internal/router"
	"github.com/pvmlabs/examgate-backend/internal/service"
	"github.com/pvmlabs/examgate-backend/internal/validator"
	"github.com/pvmlabs/examgate-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ExamGate Backend")

	// ─── Parse Exam Window ─────────────────────────────────────────────
	// A broken schedule must never serve traffic: the gate would have to
	// guess whether registration or the test is open.
	win, err := config.ParseExamWindow(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid exam window configuration")
	}
	start, end := win.TestBounds()
	log.Info().
		Str("test_date", win.TestDate.Format("2006-01-02")).
		Str("test_starts", start.Format(time.RFC3339)).
		Str("test_ends", end.Format(time.RFC3339)).
		Str("registration_from", win.RegistrationOpens().Format("2006-01-02")).
		Msg("Exam window loaded")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Mailer ─────────────────────────────────────────────
	m, err := mailer.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure mailer")
	}
	if !m.Enabled() {
		log.Warn().Msg("SMTP not configured, confirmation emails will stay queued")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	candidateRepo := repository.NewCandidateRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	clk := clock.System{}
	authService := service.NewAuthService(cfg, rdb)
	windowService := service.NewWindowService(win, clk)
	questionService := service.NewQuestionService(questionRepo, rdb, log)
	attemptService := service.NewAttemptService(pool, attemptRepo, candidateRepo, questionRepo, windowService, clk, log)
	registrationService := service.NewRegistrationService(pool, candidateRepo, windowService, win, cfg, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:           handler.NewAuthHandler(authService, candidateRepo),
		Registration:   handler.NewRegistrationHandler(registrationService),
		Window:         handler.NewWindowHandler(windowService),
		Exam:           handler.NewExamHandler(attemptService, questionService, windowService, candidateRepo),
		AdminQuestion:  handler.NewAdminQuestionHandler(questionService),
		AdminCandidate: handler.NewAdminCandidateHandler(candidateRepo, attemptService, authService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	emailWorker := worker.NewEmailWorker(rdb, m, log)
	go emailWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and let in-flight deliveries finish.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

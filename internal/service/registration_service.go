package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pvmlabs/examgate-backend/internal/config"
	"github.com/pvmlabs/examgate-backend/internal/mailer"
	"github.com/pvmlabs/examgate-backend/internal/model"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrRegistrationClosed is returned when registering outside the window.
var ErrRegistrationClosed = errors.New("registration window is closed")

// RegistrationService handles candidate sign-up.
type RegistrationService struct {
	pool          *pgxpool.Pool
	candidateRepo *repository.CandidateRepository
	winSvc        *WindowService
	win           *config.ExamWindow
	cfg           *config.Config
	rdb           *redis.Client
	log           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	pool *pgxpool.Pool,
	candidateRepo *repository.CandidateRepository,
	winSvc *WindowService,
	win *config.ExamWindow,
	cfg *config.Config,
	rdb *redis.Client,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		pool:          pool,
		candidateRepo: candidateRepo,
		winSvc:        winSvc,
		win:           win,
		cfg:           cfg,
		rdb:           rdb,
		log:           log.With().Str("component", "registration_service").Logger(),
	}
}

// Register creates a candidate inside the registration window, assigns
// their candidate code, and queues a confirmation email. The email is
// best-effort: a full delivery queue never fails the registration.
func (s *RegistrationService) Register(ctx context.Context, req *model.RegisterCandidateRequest) (*model.Candidate, error) {
	if !s.winSvc.RegistrationOpen() {
		return nil, ErrRegistrationClosed
	}

	candidate := &model.Candidate{
		FullName:      req.FullName,
		Email:         req.Email,
		Institution:   req.Institution,
		Level:         req.Level,
		CourseOfStudy: req.CourseOfStudy,
		PhoneNumber:   req.PhoneNumber,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	year := s.win.TestDate.Year()
	err = s.candidateRepo.CreateTx(ctx, tx, candidate, func(id int) string {
		return fmt.Sprintf("PVM-%d-%03d", year, id)
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.queueConfirmationEmail(ctx, candidate)

	s.log.Info().
		Int("candidate_id", candidate.ID).
		Str("candidate_code", candidate.CandidateCode).
		Msg("candidate registered")

	return candidate, nil
}

func (s *RegistrationService) queueConfirmationEmail(ctx context.Context, c *model.Candidate) {
	start, end := s.win.TestBounds()
	venue := s.win.Venue

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your exam registration is confirmed.\n\n"+
			"Candidate code: %s\n"+
			"Test date: %s\n"+
			"Test window: %s - %s\n\n"+
			"Log in with your candidate code and this email address at %s.\n"+
			"You can take the exam exactly once, only within the test window.\n",
		c.FullName,
		c.CandidateCode,
		s.win.TestDate.Format("Monday, 02 January 2006"),
		start.In(venue).Format("03:04 PM"),
		end.In(venue).Format("03:04 PM MST"),
		s.cfg.PortalURL,
	)

	payload, err := json.Marshal(mailer.Message{
		To:      c.Email,
		Subject: "Exam Registration Confirmed - " + c.CandidateCode,
		Body:    body,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("marshal confirmation email")
		return
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.OutboundEmailQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).
			Str("candidate_code", c.CandidateCode).
			Msg("queue confirmation email")
	}
}

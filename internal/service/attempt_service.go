package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pvmlabs/examgate-backend/internal/clock"
	"github.com/pvmlabs/examgate-backend/internal/model"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Attempt lifecycle errors.
var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrAlreadyAttempted   = errors.New("candidate has already taken the exam")
	ErrNoActiveAttempt    = errors.New("no exam attempt in progress")
	ErrNoSubmittedAttempt = errors.New("no submitted exam attempt")
)

// submittedLocalLayout renders the submission time for human display.
const submittedLocalLayout = "02 Jan 2006, 03:04 PM"

// AttemptService owns the attempt lifecycle: one attempt per candidate,
// started at most once, submitted at most once. Both transitions run in a
// database transaction so a crash mid-way leaves no partial state.
type AttemptService struct {
	pool          *pgxpool.Pool
	attemptRepo   *repository.AttemptRepository
	candidateRepo *repository.CandidateRepository
	questionRepo  *repository.QuestionRepository
	winSvc        *WindowService
	clk           clock.Clock
	log           zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	pool *pgxpool.Pool,
	attemptRepo *repository.AttemptRepository,
	candidateRepo *repository.CandidateRepository,
	questionRepo *repository.QuestionRepository,
	winSvc *WindowService,
	clk clock.Clock,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		pool:          pool,
		attemptRepo:   attemptRepo,
		candidateRepo: candidateRepo,
		questionRepo:  questionRepo,
		winSvc:        winSvc,
		clk:           clk,
		log:           log.With().Str("component", "attempt_service").Logger(),
	}
}

// Start creates the candidate's single exam attempt. Under concurrent
// calls for the same candidate exactly one caller gets the attempt; every
// other caller gets ErrAlreadyAttempted, the same answer a candidate who
// finished yesterday would get.
func (s *AttemptService) Start(ctx context.Context, candidateID int) (*model.Attempt, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate.HasTakenExam {
		return nil, ErrAlreadyAttempted
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	attempt := &model.Attempt{
		CandidateID: candidateID,
		StartedAt:   s.clk.Now(),
	}
	if err := s.attemptRepo.CreateTx(ctx, tx, attempt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the race: someone else inserted the attempt first.
			return nil, ErrAlreadyAttempted
		}
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	if err := s.candidateRepo.MarkTakenExamTx(ctx, tx, candidateID); err != nil {
		return nil, fmt.Errorf("mark taken: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Int("candidate_id", candidateID).
		Str("attempt_id", attempt.ID.String()).
		Msg("attempt started")

	return attempt, nil
}

// Submit grades the candidate's answers and finalizes their attempt.
// The in-progress row is locked for the duration of the transaction, so a
// double-click submits once: the second transaction finds no in-progress
// attempt and gets ErrNoActiveAttempt.
//
// Answer keys that match no question are skipped without error; the
// candidate is never penalized for a stale paper.
func (s *AttemptService) Submit(ctx context.Context, candidateID int, answers map[int]string) (*model.Attempt, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	attempt, err := s.attemptRepo.GetInProgressTx(ctx, tx, candidateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveAttempt
		}
		return nil, fmt.Errorf("lock attempt: %w", err)
	}

	// Deterministic grading order regardless of map iteration.
	ids := make([]int, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]GradedItem, 0, len(ids))
	for _, id := range ids {
		q, err := s.questionRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				s.log.Warn().
					Int("question_id", id).
					Int("candidate_id", candidateID).
					Msg("submitted answer references unknown question, skipping")
				continue
			}
			return nil, fmt.Errorf("get question %d: %w", id, err)
		}
		items = append(items, GradedItem{Question: *q, Selected: answers[id]})
	}

	result := ScoreAnswers(items)

	if err := s.attemptRepo.InsertAnswersTx(ctx, tx, attempt.ID, result.Answers); err != nil {
		return nil, fmt.Errorf("insert answers: %w", err)
	}

	finishedAt := s.clk.Now()
	submittedLocal := finishedAt.In(s.winSvc.Venue()).Format(submittedLocalLayout)

	if err := s.attemptRepo.FinalizeTx(ctx, tx, attempt.ID, finishedAt, result.Total, result.Breakdown, submittedLocal); err != nil {
		return nil, fmt.Errorf("finalize attempt: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	attempt.FinishedAt = &finishedAt
	attempt.Score = result.Total
	attempt.SectionBreakdown = result.Breakdown
	attempt.SubmittedLocal = submittedLocal

	s.log.Info().
		Int("candidate_id", candidateID).
		Str("attempt_id", attempt.ID.String()).
		Int("score", result.Total).
		Int("graded", len(result.Answers)).
		Msg("attempt submitted")

	return attempt, nil
}

// InProgress returns the candidate's in-progress attempt, or
// ErrNoActiveAttempt when there is none.
func (s *AttemptService) InProgress(ctx context.Context, candidateID int) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.GetInProgress(ctx, candidateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveAttempt
		}
		return nil, fmt.Errorf("get in-progress attempt: %w", err)
	}
	return attempt, nil
}

// Result returns the candidate's submitted attempt.
func (s *AttemptService) Result(ctx context.Context, candidateID int) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.GetSubmitted(ctx, candidateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSubmittedAttempt
		}
		return nil, fmt.Errorf("get submitted attempt: %w", err)
	}
	return attempt, nil
}

// AttemptDetail pairs an attempt with its graded answer rows for the
// admin review view.
type AttemptDetail struct {
	Attempt model.Attempt  `json:"attempt"`
	Answers []model.Answer `json:"answers"`
}

// DetailByCandidate returns a candidate's submitted attempt with answers.
func (s *AttemptService) DetailByCandidate(ctx context.Context, candidateID int) (*AttemptDetail, error) {
	attempt, err := s.Result(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	answers, err := s.attemptRepo.ListAnswers(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	return &AttemptDetail{Attempt: *attempt, Answers: answers}, nil
}

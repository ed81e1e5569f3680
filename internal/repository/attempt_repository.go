package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pvmlabs/examgate-backend/internal/model"
)

const attemptColumns = `id, candidate_id, started_at, finished_at, score, section_breakdown, submitted_local`

// AttemptRepository handles attempt and answer data access.
//
// Attempt rows carry the one-shot invariant: a UNIQUE constraint on
// candidate_id means at most one attempt ever exists per candidate, and
// only that row can have finished_at IS NULL.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// CreateTx conditionally inserts the candidate's attempt row within tx.
// The ON CONFLICT DO NOTHING insert is the serialization point for
// concurrent starts: the loser gets no row back (pgx.ErrNoRows) and must
// be reported as "already attempted", never as a duplicate.
func (r *AttemptRepository) CreateTx(ctx context.Context, tx pgx.Tx, a *model.Attempt) error {
	return tx.QueryRow(ctx,
		`INSERT INTO attempts (candidate_id, started_at)
		 VALUES ($1, $2)
		 ON CONFLICT (candidate_id) DO NOTHING
		 RETURNING id`,
		a.CandidateID, a.StartedAt,
	).Scan(&a.ID)
}

// GetInProgressTx locks and returns the candidate's in-progress attempt
// within tx. Returns pgx.ErrNoRows when none exists.
func (r *AttemptRepository) GetInProgressTx(ctx context.Context, tx pgx.Tx, candidateID int) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := tx.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE candidate_id = $1 AND finished_at IS NULL
		 FOR UPDATE`, candidateID,
	).Scan(&a.ID, &a.CandidateID, &a.StartedAt, &a.FinishedAt, &a.Score, &a.SectionBreakdown, &a.SubmittedLocal)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetInProgress returns the candidate's in-progress attempt without locking.
func (r *AttemptRepository) GetInProgress(ctx context.Context, candidateID int) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE candidate_id = $1 AND finished_at IS NULL`, candidateID,
	).Scan(&a.ID, &a.CandidateID, &a.StartedAt, &a.FinishedAt, &a.Score, &a.SectionBreakdown, &a.SubmittedLocal)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetSubmitted returns the candidate's terminal attempt, if any.
func (r *AttemptRepository) GetSubmitted(ctx context.Context, candidateID int) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE candidate_id = $1 AND finished_at IS NOT NULL`, candidateID,
	).Scan(&a.ID, &a.CandidateID, &a.StartedAt, &a.FinishedAt, &a.Score, &a.SectionBreakdown, &a.SubmittedLocal)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// InsertAnswersTx batch-inserts the graded answer rows within tx.
func (r *AttemptRepository) InsertAnswersTx(ctx context.Context, tx pgx.Tx, attemptID uuid.UUID, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, ans := range answers {
		b.Queue(
			`INSERT INTO answers (attempt_id, question_id, selected_option, correct_option, is_correct)
			 VALUES ($1, $2, $3, $4, $5)`,
			attemptID, ans.QuestionID, ans.SelectedOption, ans.CorrectOption, ans.IsCorrect,
		)
	}

	br := tx.SendBatch(ctx, b)
	defer br.Close()

	for range answers {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}
	return nil
}

// FinalizeTx sets the terminal fields of the attempt within tx.
// Once finished_at is non-null the row is never written again.
func (r *AttemptRepository) FinalizeTx(ctx context.Context, tx pgx.Tx, attemptID uuid.UUID, finishedAt time.Time, score int, breakdown map[model.Section]string, submittedLocal string) error {
	_, err := tx.Exec(ctx,
		`UPDATE attempts
		 SET finished_at = $1, score = $2, section_breakdown = $3, submitted_local = $4
		 WHERE id = $5`,
		finishedAt, score, breakdown, submittedLocal, attemptID,
	)
	return err
}

// ListAnswers retrieves the graded answer rows for an attempt.
func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, attempt_id, question_id, selected_option, correct_option, is_correct
		 FROM answers
		 WHERE attempt_id = $1
		 ORDER BY question_id`, attemptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &a.SelectedOption, &a.CorrectOption, &a.IsCorrect); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

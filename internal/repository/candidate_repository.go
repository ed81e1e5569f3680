package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pvmlabs/examgate-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("candidate with this email already exists")

const candidateColumns = `id, candidate_code, full_name, email, institution, level, course_of_study, phone_number, registered_at, has_taken_exam`

// CandidateRepository handles candidate data access.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository creates a new CandidateRepository.
func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

// GetByID retrieves a candidate by ID.
func (r *CandidateRepository) GetByID(ctx context.Context, id int) (*model.Candidate, error) {
	c := &model.Candidate{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id,
	).Scan(&c.ID, &c.CandidateCode, &c.FullName, &c.Email, &c.Institution, &c.Level,
		&c.CourseOfStudy, &c.PhoneNumber, &c.RegisteredAt, &c.HasTakenExam)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByEmail retrieves a candidate by their unique email.
func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	c := &model.Candidate{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE email = $1`, email,
	).Scan(&c.ID, &c.CandidateCode, &c.FullName, &c.Email, &c.Institution, &c.Level,
		&c.CourseOfStudy, &c.PhoneNumber, &c.RegisteredAt, &c.HasTakenExam)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateTx inserts a new candidate and assigns its candidate code within tx.
// The code embeds the generated row id, so both happen in one unit of work.
func (r *CandidateRepository) CreateTx(ctx context.Context, tx pgx.Tx, c *model.Candidate, codeFor func(id int) string) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO candidates (candidate_code, full_name, email, institution, level, course_of_study, phone_number)
		 VALUES ('', $1, $2, $3, $4, $5, $6)
		 RETURNING id, registered_at`,
		c.FullName, c.Email, c.Institution, c.Level, c.CourseOfStudy, c.PhoneNumber,
	).Scan(&c.ID, &c.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	c.CandidateCode = codeFor(c.ID)
	if _, err := tx.Exec(ctx,
		`UPDATE candidates SET candidate_code = $1 WHERE id = $2`, c.CandidateCode, c.ID,
	); err != nil {
		return fmt.Errorf("assign candidate code: %w", err)
	}
	return nil
}

// MarkTakenExamTx flips the cached has_taken_exam flag within tx.
func (r *CandidateRepository) MarkTakenExamTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx,
		`UPDATE candidates SET has_taken_exam = TRUE WHERE id = $1`, id)
	return err
}

// CandidateResult pairs a candidate with their attempt score, if any.
type CandidateResult struct {
	model.Candidate
	Score       *int    `json:"score"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
}

// ListWithScores retrieves candidates joined with their attempt scores,
// best scores first, paginated.
func (r *CandidateRepository) ListWithScores(ctx context.Context, limit, offset int) ([]CandidateResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.candidate_code, c.full_name, c.email, c.institution, c.level,
		        c.course_of_study, c.phone_number, c.registered_at, c.has_taken_exam,
		        a.score, a.submitted_local
		 FROM candidates c
		 LEFT JOIN attempts a ON a.candidate_id = c.id AND a.finished_at IS NOT NULL
		 ORDER BY a.score DESC NULLS LAST, c.full_name ASC
		 LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []CandidateResult
	for rows.Next() {
		var cr CandidateResult
		if err := rows.Scan(&cr.ID, &cr.CandidateCode, &cr.FullName, &cr.Email, &cr.Institution,
			&cr.Level, &cr.CourseOfStudy, &cr.PhoneNumber, &cr.RegisteredAt, &cr.HasTakenExam,
			&cr.Score, &cr.SubmittedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, cr)
	}
	return results, total, rows.Err()
}

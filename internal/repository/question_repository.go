package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pvmlabs/examgate-backend/internal/model"
)

const questionColumns = `id, section, level, question_text, option_a, option_b, option_c, option_d, correct_option, created_at`

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Section, &q.Level, &q.QuestionText,
		&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListBySectionAndLevel retrieves up to limit questions for one section at
// one level, in insertion order. Selection order is deliberately stable;
// there is no randomization.
func (r *QuestionRepository) ListBySectionAndLevel(ctx context.Context, section model.Section, level model.Level, limit int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE section = $1 AND level = $2
		 ORDER BY id
		 LIMIT $3`, section, level, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Section, &q.Level, &q.QuestionText,
			&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListPaginated retrieves questions with optional section/level filters.
func (r *QuestionRepository) ListPaginated(ctx context.Context, section *model.Section, level *model.Level, limit, offset int) ([]model.Question, int, error) {
	where := ``
	var args []interface{}
	if section != nil {
		args = append(args, *section)
		where += ` WHERE section = $` + strconv.Itoa(len(args))
	}
	if level != nil {
		args = append(args, *level)
		if where == "" {
			where += ` WHERE`
		} else {
			where += ` AND`
		}
		where += ` level = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + questionColumns + ` FROM questions` + where +
		` ORDER BY section, id LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Section, &q.Level, &q.QuestionText,
			&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption, &q.CreatedAt); err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (section, level, question_text, option_a, option_b, option_c, option_d, correct_option)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		q.Section, q.Level, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption,
	).Scan(&q.ID, &q.CreatedAt)
}

// Update modifies an existing question. Past attempts keep the answer rows
// captured at scoring time, so edits never rescore history.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET section = $1, level = $2, question_text = $3,
		     option_a = $4, option_b = $5, option_c = $6, option_d = $7, correct_option = $8
		 WHERE id = $9`,
		q.Section, q.Level, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, q.ID,
	)
	return err
}

// Delete removes a question by ID.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

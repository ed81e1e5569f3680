package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pvmlabs/examgate-backend/internal/config"
	"github.com/pvmlabs/examgate-backend/internal/model"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// QuestionsPerSection is how many questions each section contributes to a paper.
const QuestionsPerSection = 10

// paperCacheTTL bounds how stale a cached paper can get if an admin edit
// slips past invalidation.
const paperCacheTTL = 10 * time.Minute

// QuestionService handles question management and paper assembly.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// GetPaper assembles the exam paper for a level: up to QuestionsPerSection
// questions per section, correct answers stripped, grouped in paper order.
// Papers are identical for every candidate at a level, so the assembled
// paper is cached in Redis and rebuilt on question changes or TTL expiry.
func (s *QuestionService) GetPaper(ctx context.Context, level model.Level) (*model.Paper, error) {
	cacheKey := config.CacheKey.PaperKey(string(level))

	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var paper model.Paper
		if err := json.Unmarshal([]byte(cached), &paper); err == nil {
			return &paper, nil
		}
		// Corrupt cache entry: fall through and rebuild.
		_ = s.rdb.Del(ctx, cacheKey)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("paper cache read failed, serving from database")
	}

	paper := &model.Paper{
		Level:    level,
		Sections: make(map[model.Section][]model.PaperQuestion, len(model.Sections)),
	}

	for _, section := range model.Sections {
		questions, err := s.questionRepo.ListBySectionAndLevel(ctx, section, level, QuestionsPerSection)
		if err != nil {
			return nil, fmt.Errorf("list %s questions: %w", section, err)
		}

		stripped := make([]model.PaperQuestion, 0, len(questions))
		for _, q := range questions {
			stripped = append(stripped, model.PaperQuestion{
				ID:           q.ID,
				Section:      q.Section,
				QuestionText: q.QuestionText,
				OptionA:      q.OptionA,
				OptionB:      q.OptionB,
				OptionC:      q.OptionC,
				OptionD:      q.OptionD,
			})
		}
		paper.Sections[section] = stripped
	}

	if payload, err := json.Marshal(paper); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, paperCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("paper cache write failed")
		}
	}

	return paper, nil
}

// GetByID retrieves one question with its correct answer, for admin use.
func (s *QuestionService) GetByID(ctx context.Context, id int) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// List retrieves questions with optional filters, for admin use.
func (s *QuestionService) List(ctx context.Context, section *model.Section, level *model.Level, limit, offset int) ([]model.Question, int, error) {
	return s.questionRepo.ListPaginated(ctx, section, level, limit, offset)
}

// Create adds a question to the bank.
func (s *QuestionService) Create(ctx context.Context, req *model.SaveQuestionRequest) (*model.Question, error) {
	q := questionFromRequest(req)
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	s.invalidatePaper(ctx, q.Level)
	return q, nil
}

// Update modifies an existing question. Already-submitted attempts keep
// the answers captured at scoring time and are never rescored.
func (s *QuestionService) Update(ctx context.Context, id int, req *model.SaveQuestionRequest) (*model.Question, error) {
	existing, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	q := questionFromRequest(req)
	q.ID = id
	q.CreatedAt = existing.CreatedAt
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	s.invalidatePaper(ctx, existing.Level)
	if q.Level != existing.Level {
		s.invalidatePaper(ctx, q.Level)
	}
	return q, nil
}

// Delete removes a question from the bank.
func (s *QuestionService) Delete(ctx context.Context, id int) error {
	existing, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	s.invalidatePaper(ctx, existing.Level)
	return nil
}

func (s *QuestionService) invalidatePaper(ctx context.Context, level model.Level) {
	if err := s.rdb.Del(ctx, config.CacheKey.PaperKey(string(level))).Err(); err != nil {
		s.log.Warn().Err(err).Str("level", string(level)).Msg("paper cache invalidation failed")
	}
}

func questionFromRequest(req *model.SaveQuestionRequest) *model.Question {
	return &model.Question{
		Section:       req.Section,
		Level:         req.Level,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: normalizeOption(req.CorrectOption),
	}
}

func normalizeOption(opt string) string {
	switch opt {
	case "a":
		return "A"
	case "b":
		return "B"
	case "c":
		return "C"
	case "d":
		return "D"
	default:
		return opt
	}
}

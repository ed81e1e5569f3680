// Command seed-questions fills the question bank with placeholder
// questions for every section and level, for local development.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pvmlabs/examgate-backend/internal/config"
	"github.com/pvmlabs/examgate-backend/internal/database"
	"github.com/pvmlabs/examgate-backend/internal/logger"
	"github.com/pvmlabs/examgate-backend/internal/model"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/pvmlabs/examgate-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)

	levels := []model.Level{model.Level100, model.Level200}
	options := []string{"A", "B", "C", "D"}

	fmt.Printf("=== Seeding %d questions per section per level ===\n", service.QuestionsPerSection)

	var created int
	for _, level := range levels {
		for _, section := range model.Sections {
			existing, err := questionRepo.ListBySectionAndLevel(ctx, section, level, service.QuestionsPerSection)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to check existing questions")
			}
			if len(existing) >= service.QuestionsPerSection {
				fmt.Printf("Skipping %s %s: already has %d questions\n", section, level, len(existing))
				continue
			}

			for i := len(existing) + 1; i <= service.QuestionsPerSection; i++ {
				q := &model.Question{
					Section:       section,
					Level:         level,
					QuestionText:  fmt.Sprintf("[%s/%s] Sample question %d: choose the best answer.", section, level, i),
					OptionA:       fmt.Sprintf("Answer choice A for question %d", i),
					OptionB:       fmt.Sprintf("Answer choice B for question %d", i),
					OptionC:       fmt.Sprintf("Answer choice C for question %d", i),
					OptionD:       fmt.Sprintf("Answer choice D for question %d", i),
					CorrectOption: options[i%len(options)],
				}
				if err := questionRepo.Create(ctx, q); err != nil {
					log.Fatal().Err(err).
						Str("section", string(section)).
						Str("level", string(level)).
						Msg("Failed to create question")
				}
				created++
			}
		}
	}

	fmt.Printf("Done. Created %d questions.\n", created)
}

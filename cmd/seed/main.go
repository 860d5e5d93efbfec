// Command seed writes the built-in default data files into the configured
// data directory: the starter question bank, and an empty user map when no
// users file exists yet.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcqapp/quiz-service/internal/config"
	"github.com/mcqapp/quiz-service/internal/logging"
	"github.com/mcqapp/quiz-service/internal/question"
	"github.com/mcqapp/quiz-service/internal/store"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.Name, cfg.Env)

	questionStore := question.NewStore(cfg.Storage.QuestionsPath(), logger)
	if err := questionStore.WriteDefaults(); err != nil {
		logger.Fatal().Err(err).Msg("seed question bank")
	}
	logger.Info().Str("path", cfg.Storage.QuestionsPath()).Msg("question bank seeded")

	usersPath := cfg.Storage.UsersPath()
	if _, err := os.Stat(usersPath); os.IsNotExist(err) {
		userStore := store.NewUserStore(usersPath, logger)
		if err := userStore.Save(map[string]store.UserAccount{}); err != nil {
			logger.Fatal().Err(err).Msg("seed user map")
		}
		logger.Info().Str("path", usersPath).Msg("empty user map created")
	} else {
		logger.Info().Str("path", usersPath).Msg("users file exists, leaving untouched")
	}
}

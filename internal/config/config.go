package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"mcq-quiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Storage  Storage
	Security Security
	Quiz     Quiz
	CORS     CORS
}

// Storage points at the flat-file JSON documents backing the service.
type Storage struct {
	DataDir       string `env:"DATA_DIR" envDefault:"data"`
	QuestionsFile string `env:"QUESTIONS_FILE" envDefault:"questions.json"`
	UsersFile     string `env:"USERS_FILE" envDefault:"users.json"`
}

// QuestionsPath returns the full path of the question bank file.
func (s Storage) QuestionsPath() string {
	return filepath.Join(s.DataDir, s.QuestionsFile)
}

// UsersPath returns the full path of the user map file.
func (s Storage) UsersPath() string {
	return filepath.Join(s.DataDir, s.UsersFile)
}

// Security stores secrets for token signing. The secret is validated at app
// bootstrap rather than here so auxiliary commands can load config without it.
type Security struct {
	JWTSecret string `env:"JWT_SECRET" envDefault:""`
}

// Quiz groups gameplay policy knobs.
type Quiz struct {
	ShuffleOptions bool          `env:"QUIZ_SHUFFLE_OPTIONS" envDefault:"false"`
	SessionTTL     time.Duration `env:"QUIZ_SESSION_TTL" envDefault:"30m"`
	ReapInterval   time.Duration `env:"QUIZ_SESSION_REAP_INTERVAL" envDefault:"1m"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

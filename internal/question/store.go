package question

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/store"
)

// fileRecord is the on-disk form of a question. The correct index is
// string-encoded and 1-based, matching the legacy data files.
type fileRecord struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// Store loads the question bank from its JSON file. A missing, corrupt, or
// empty file is replaced with the built-in default bank; Load never fails.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a question store backed by the file at path.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "question_store").Logger(),
	}
}

// Load reads and validates the bank, seeding defaults when needed.
func (s *Store) Load() Bank {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("question file unreadable, seeding defaults")
		return s.seedDefaults()
	}

	raw := map[string][]fileRecord{}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("question file corrupt, seeding defaults")
		return s.seedDefaults()
	}
	if len(raw) == 0 {
		s.logger.Warn().Str("path", s.path).Msg("question file empty, seeding defaults")
		return s.seedDefaults()
	}

	bank := make(Bank, len(raw))
	for category, records := range raw {
		kept := make([]Record, 0, len(records))
		for i, fr := range records {
			record, ok := coerce(fr)
			if !ok {
				s.logger.Warn().
					Str("category", category).
					Int("index", i).
					Str("question", fr.Question).
					Msg("dropping invalid question record")
				continue
			}
			kept = append(kept, record)
		}
		// An empty category stays selectable; it just contributes no items.
		bank[category] = kept
	}
	return bank
}

// coerce validates a raw record and converts the string-typed correct index.
func coerce(fr fileRecord) (Record, bool) {
	if fr.Question == "" || len(fr.Options) < 2 {
		return Record{}, false
	}
	correct, err := strconv.Atoi(fr.Correct)
	if err != nil || correct < 1 || correct > len(fr.Options) {
		return Record{}, false
	}
	return Record{
		Prompt:  fr.Question,
		Options: append([]string(nil), fr.Options...),
		Correct: correct,
	}, true
}

func (s *Store) seedDefaults() Bank {
	bank := DefaultBank()
	if err := s.writeBank(bank); err != nil {
		s.logger.Error().Err(err).Msg("failed to write default question file")
	}
	return bank
}

func (s *Store) writeBank(bank Bank) error {
	raw := make(map[string][]fileRecord, len(bank))
	for category, records := range bank {
		out := make([]fileRecord, len(records))
		for i, r := range records {
			out[i] = fileRecord{
				Question: r.Prompt,
				Options:  append([]string(nil), r.Options...),
				Correct:  strconv.Itoa(r.Correct),
			}
		}
		raw[category] = out
	}
	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return err
	}
	return store.WriteFileAtomic(s.path, data)
}

// WriteDefaults writes the built-in bank to disk regardless of current
// content. Used by the seed command.
func (s *Store) WriteDefaults() error {
	return s.writeBank(DefaultBank())
}

// DefaultBank returns the built-in starter bank: three categories with one
// question each.
func DefaultBank() Bank {
	return Bank{
		"Python": {
			{
				Prompt:  "What is Python?",
				Options: []string{"Programming Language", "Snake", "Movie", "Game"},
				Correct: 1,
			},
		},
		"Computer Science": {
			{
				Prompt: "What does CPU stand for?",
				Options: []string{
					"Central Processing Unit",
					"Central Programming Unit",
					"Control Processing Unit",
					"Compute Program Unit",
				},
				Correct: 1,
			},
		},
		"Networking": {
			{
				Prompt: "What is the use of an IP address?",
				Options: []string{
					"Identifies a device on a network",
					"Encrypts data",
					"Runs applications",
					"None of these",
				},
				Correct: 1,
			},
		},
	}
}

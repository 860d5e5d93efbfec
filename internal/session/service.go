package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/metrics"
	"github.com/mcqapp/quiz-service/internal/question"
	"github.com/mcqapp/quiz-service/internal/session/scoring"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionComplete = errors.New("session already complete")
	ErrEmptySelection  = errors.New("no categories selected")
	ErrNoQuestions     = errors.New("selected categories contain no questions")
	ErrInvalidChoice   = errors.New("choice out of range")
)

// HistoryRecorder persists a finished quiz result. Implemented by the history
// package; stubbed in tests.
type HistoryRecorder interface {
	Record(username string, scores []CategoryScore) error
}

// Service drives the quiz session lifecycle: build on start, evaluate per
// answer, aggregate and record on finish.
type Service struct {
	questions *question.Service
	manager   *Manager
	recorder  HistoryRecorder
	engine    *scoring.Engine
	logger    zerolog.Logger

	shuffleOptions bool
	rng            *rand.Rand
	now            func() time.Time
}

// ServiceOptions configures session policy.
type ServiceOptions struct {
	// ShuffleOptions enables per-session option shuffling with the correct
	// index remapped. Default presents options in stored order.
	ShuffleOptions bool
	Rand           *rand.Rand
	Now            func() time.Time
}

// NewService creates the session service.
func NewService(questions *question.Service, manager *Manager, recorder HistoryRecorder, opts ServiceOptions, logger zerolog.Logger) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		questions:      questions,
		manager:        manager,
		recorder:       recorder,
		engine:         scoring.NewEngine(nil),
		logger:         logger.With().Str("component", "session").Logger(),
		shuffleOptions: opts.ShuffleOptions,
		rng:            opts.Rand,
		now:            now,
	}
}

// StartResult describes a freshly built session.
type StartResult struct {
	ID            uuid.UUID
	QuestionCount int
	Categories    []string
}

// Start builds and registers a new session for the user. The selection must
// be non-empty and must yield at least one item.
func (s *Service) Start(username string, categories []string) (*StartResult, error) {
	if len(categories) == 0 {
		return nil, ErrEmptySelection
	}

	items, scores := Build(categories, s.questions.Bank(), BuildOptions{
		ShuffleOptions: s.shuffleOptions,
		Rand:           s.rng,
	})
	if len(items) == 0 {
		return nil, ErrNoQuestions
	}

	now := s.now()
	sess := &Session{
		ID:         uuid.New(),
		Username:   username,
		Categories: append([]string(nil), categories...),
		Items:      items,
		Scores:     scores,
		CreatedAt:  now,
		LastActive: now,
	}
	s.manager.Put(sess)
	metrics.SessionsStarted.Inc()

	s.logger.Info().
		Str("session_id", sess.ID.String()).
		Str("username", username).
		Int("questions", len(items)).
		Strs("categories", categories).
		Msg("session started")

	return &StartResult{
		ID:            sess.ID,
		QuestionCount: len(items),
		Categories:    sess.Categories,
	}, nil
}

// Current returns the question at the cursor without its correct index.
func (s *Service) Current(username string, id uuid.UUID) (View, error) {
	sess, err := s.lookup(username, id)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Cursor >= len(sess.Items) {
		return View{}, ErrSessionComplete
	}

	item := sess.Items[sess.Cursor]
	return View{
		Order:     sess.Cursor + 1,
		Total:     len(sess.Items),
		Category:  item.Category,
		Prompt:    item.Prompt,
		Options:   append([]string(nil), item.Options...),
		Remaining: len(sess.Items) - sess.Cursor,
	}, nil
}

// AnswerResult reports the outcome of one submitted answer. CorrectOption
// carries the right index so clients can show it on a wrong answer.
type AnswerResult struct {
	Correct       bool
	CorrectOption int
	Remaining     int
}

// Answer evaluates the current question exactly once and advances the cursor.
func (s *Service) Answer(username string, id uuid.UUID, chosen int) (AnswerResult, error) {
	sess, err := s.lookup(username, id)
	if err != nil {
		return AnswerResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Cursor >= len(sess.Items) {
		return AnswerResult{}, ErrSessionComplete
	}

	item := sess.Items[sess.Cursor]
	if chosen < 1 || chosen > len(item.Options) {
		return AnswerResult{}, ErrInvalidChoice
	}

	correct := Submit(item, sess.Scores, chosen)
	sess.Cursor++
	sess.LastActive = s.now()

	result := "incorrect"
	if correct {
		result = "correct"
	}
	metrics.AnswersTotal.WithLabelValues(result).Inc()

	return AnswerResult{
		Correct:       correct,
		CorrectOption: item.Correct,
		Remaining:     len(sess.Items) - sess.Cursor,
	}, nil
}

// Finish aggregates the accumulator, records the result in the user's
// history, and removes the session. A history write failure is logged and
// swallowed: the result is lost but the summary still reaches the client.
// Finishing with unanswered items left simply scores what was attempted.
func (s *Service) Finish(username string, id uuid.UUID) (scoring.Summary, error) {
	sess, err := s.lookup(username, id)
	if err != nil {
		return scoring.Summary{}, err
	}

	sess.mu.Lock()
	scores := append([]CategoryScore(nil), sess.Scores...)
	sess.mu.Unlock()

	totals := make([]scoring.CategoryTotal, len(scores))
	for i, cs := range scores {
		totals[i] = scoring.CategoryTotal{
			Category:  cs.Category,
			Correct:   cs.Correct,
			Attempted: cs.Attempted,
		}
	}
	summary := s.engine.Summarize(totals)

	if err := s.recorder.Record(username, scores); err != nil {
		s.logger.Error().Err(err).
			Str("session_id", id.String()).
			Str("username", username).
			Msg("failed to record quiz history")
	}

	s.manager.Delete(id)
	metrics.SessionsCompleted.Inc()

	s.logger.Info().
		Str("session_id", id.String()).
		Str("username", username).
		Int("correct", summary.Correct).
		Int("attempted", summary.Attempted).
		Msg("session finished")

	return summary, nil
}

// lookup fetches a session and checks ownership. A session started by another
// user reads as not found so its existence never leaks.
func (s *Service) lookup(username string, id uuid.UUID) (*Session, error) {
	sess, ok := s.manager.Get(id)
	if !ok || sess.Username != username {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

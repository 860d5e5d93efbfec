// Package history turns finished quiz accumulators into persisted, reviewable
// score history.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/session"
	"github.com/mcqapp/quiz-service/internal/store"
)

const dateLayout = "2006-01-02 15:04"

// Recorder appends quiz results to a user's persisted history and reads them
// back for review and export.
type Recorder struct {
	users  *store.UserStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewRecorder creates a history recorder over the user store.
func NewRecorder(users *store.UserStore, logger zerolog.Logger) *Recorder {
	return &Recorder{
		users:  users,
		logger: logger.With().Str("component", "history").Logger(),
		now:    time.Now,
	}
}

// WithClock overrides the clock. Tests use a fixed time.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record builds a history entry from the accumulator and appends it to the
// user's account: total correct/attempted plus one sub-record per category
// slot, in slot order. The user must already exist; Record never creates
// accounts. The whole user map is written back in one read-modify-write.
func (r *Recorder) Record(username string, scores []session.CategoryScore) error {
	entry := buildEntry(r.now(), scores)

	return r.users.Update(func(users map[string]store.UserAccount) error {
		account, ok := users[username]
		if !ok {
			return fmt.Errorf("record history for %q: %w", username, store.ErrUserNotFound)
		}
		account.History = append(account.History, entry)
		users[username] = account
		return nil
	})
}

func buildEntry(at time.Time, scores []session.CategoryScore) store.HistoryEntry {
	totalCorrect, totalAttempted := 0, 0
	categories := make([]store.CategoryScore, len(scores))
	for i, cs := range scores {
		totalCorrect += cs.Correct
		totalAttempted += cs.Attempted
		categories[i] = store.CategoryScore{
			Category: cs.Category,
			Score:    fmt.Sprintf("%d/%d", cs.Correct, cs.Attempted),
		}
	}
	return store.HistoryEntry{
		Date:       at.Format(dateLayout),
		TotalScore: fmt.Sprintf("%d/%d", totalCorrect, totalAttempted),
		Categories: categories,
	}
}

// History returns a user's entries newest-first.
func (r *Recorder) History(username string) ([]store.HistoryEntry, error) {
	account, err := r.users.Get(username)
	if err != nil {
		return nil, err
	}

	entries := make([]store.HistoryEntry, len(account.History))
	for i, entry := range account.History {
		entries[len(account.History)-1-i] = entry
	}
	return entries, nil
}

// WriteCSV exports entries as CSV: one row per (entry, category) pair.
func WriteCSV(w io.Writer, entries []store.HistoryEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Total Score", "Category", "Category Score"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		for _, category := range entry.Categories {
			row := []string{entry.Date, entry.TotalScore, category.Category, category.Score}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is one bank question tagged with its owning category for the duration
// of a session. Items are never mutated after the session is built.
type Item struct {
	Category string
	Prompt   string
	Options  []string
	Correct  int // 1-based index into Options
}

// CategoryScore is one accumulator slot: progress within a single selected
// category. Attempted always increments on submit; Correct only on a correct
// answer.
type CategoryScore struct {
	Category  string
	Correct   int
	Attempted int
}

// Session holds the state of one running quiz. The running session
// exclusively owns its items and accumulator; nothing here touches disk.
type Session struct {
	ID         uuid.UUID
	Username   string
	Categories []string
	Items      []Item
	Scores     []CategoryScore
	Cursor     int
	CreatedAt  time.Time
	LastActive time.Time

	mu sync.Mutex
}

// View is a presentation-safe projection of the current question: everything
// the client needs, minus the correct index.
type View struct {
	Order     int // 1-based position in the session
	Total     int
	Category  string
	Prompt    string
	Options   []string
	Remaining int // items left including this one
}

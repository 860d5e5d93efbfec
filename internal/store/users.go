package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ErrUserNotFound is returned when an operation targets an unknown username.
var ErrUserNotFound = errors.New("user not found")

// UserAccount is one persisted account record keyed by username.
type UserAccount struct {
	Password  string         `json:"password"` // bcrypt hash
	CreatedAt string         `json:"created_at"`
	History   []HistoryEntry `json:"history"`
}

// HistoryEntry records the outcome of one completed quiz. Entries are
// append-only and immutable once written.
type HistoryEntry struct {
	Date       string          `json:"date"`
	TotalScore string          `json:"total_score"` // "correct/attempted"
	Categories []CategoryScore `json:"categories"`
}

// CategoryScore is the per-category portion of a history entry.
type CategoryScore struct {
	Category string `json:"category"`
	Score    string `json:"score"` // "correct/attempted"
}

// UserStore owns the users JSON file. Reads return fresh snapshots; writes
// replace the whole document.
type UserStore struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewUserStore creates a user store backed by the file at path.
func NewUserStore(path string, logger zerolog.Logger) *UserStore {
	return &UserStore{
		path:   path,
		logger: logger.With().Str("component", "user_store").Logger(),
	}
}

// Load reads the full user map. A missing file yields an empty map; a corrupt
// file is an error, since user data must never be silently regenerated.
func (s *UserStore) Load() (map[string]UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *UserStore) load() (map[string]UserAccount, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]UserAccount{}, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}

	users := map[string]UserAccount{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users file: %w", err)
	}
	return users, nil
}

// Save writes the full user map back to disk.
func (s *UserStore) Save(users map[string]UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(users)
}

func (s *UserStore) save(users map[string]UserAccount) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

// Update runs fn against the current user map and persists the result. The
// read-modify-write cycle holds the store lock, so concurrent callers within
// this process cannot clobber each other's updates.
func (s *UserStore) Update(fn func(users map[string]UserAccount) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(users); err != nil {
		return err
	}
	return s.save(users)
}

// Get returns a single account snapshot.
func (s *UserStore) Get(username string) (UserAccount, error) {
	users, err := s.Load()
	if err != nil {
		return UserAccount{}, err
	}
	account, ok := users[username]
	if !ok {
		return UserAccount{}, ErrUserNotFound
	}
	return account, nil
}

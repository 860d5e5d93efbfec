package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/auth/jwt"
	"github.com/mcqapp/quiz-service/internal/store"
)

var (
	// ErrUserExists is returned when registering a username already present.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials deliberately covers both unknown usernames and
	// wrong passwords so the response does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// createdAtLayout matches the timestamp format in existing user files.
const createdAtLayout = "2006-01-02 15:04"

// Service handles credential operations against the flat-file user store.
type Service struct {
	users    *store.UserStore
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
	now      func() time.Time
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
	Now         func() time.Time
}

// NewService creates an authentication service.
func NewService(users *store.UserStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		users:    users,
		tokenMgr: jwt.NewManager(opts.TokenConfig),
		logger:   logger.With().Str("component", "auth").Logger(),
		now:      now,
	}
}

// Register creates a new account with a bcrypt-hashed password and empty
// history, then issues a token pair.
func (s *Service) Register(req RegisterRequest) (*User, *TokenPair, error) {
	if req.Username == "" {
		return nil, nil, fmt.Errorf("username required")
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	createdAt := s.now().Format(createdAtLayout)
	err = s.users.Update(func(users map[string]store.UserAccount) error {
		if _, exists := users[req.Username]; exists {
			return ErrUserExists
		}
		users[req.Username] = store.UserAccount{
			Password:  passwordHash,
			CreatedAt: createdAt,
			History:   []store.HistoryEntry{},
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokenPair(req.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("username", req.Username).Msg("user registered")

	return &User{Username: req.Username, CreatedAt: createdAt}, tokens, nil
}

// Login authenticates username/password and issues a token pair.
func (s *Service) Login(req LoginRequest) (*User, *TokenPair, error) {
	account, err := s.users.Get(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if err := VerifyPassword(account.Password, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(req.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("username", req.Username).Msg("user logged in")

	return &User{
		Username:  req.Username,
		CreatedAt: account.CreatedAt,
		QuizCount: len(account.History),
	}, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// The account may have been removed since the token was issued.
	if _, err := s.users.Get(claims.Username); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(claims.Username)
}

// Me returns the public view of an account.
func (s *Service) Me(username string) (*User, error) {
	account, err := s.users.Get(username)
	if err != nil {
		return nil, err
	}
	return &User{
		Username:  username,
		CreatedAt: account.CreatedAt,
		QuizCount: len(account.History),
	}, nil
}

// ValidateToken checks an access token and returns its claims.
func (s *Service) ValidateToken(token string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(token)
}

func (s *Service) generateTokenPair(username string) (*TokenPair, error) {
	access, err := s.tokenMgr.GenerateAccessToken(username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokenMgr.AccessTTL().Seconds()),
	}, nil
}

package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcqapp/quiz-service/internal/auth/jwt"
	"github.com/mcqapp/quiz-service/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	users := store.NewUserStore(filepath.Join(t.TempDir(), "users.json"), zerolog.Nop())
	return NewService(users, ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			AccessSecret:  []byte("test-secret"),
			RefreshSecret: []byte("test-secret_refresh"),
			Issuer:        "mcq-quiz-test",
		},
		Now: func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) },
	}, zerolog.Nop())
}

func TestRegisterCreatesAccount(t *testing.T) {
	svc := newTestService(t)

	user, tokens, err := svc.Register(RegisterRequest{Username: "bob", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "2024-03-01 10:30", user.CreatedAt)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
}

func TestRegisterDuplicateFails(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Register(RegisterRequest{Username: "bob", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = svc.Register(RegisterRequest{Username: "bob", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterShortPasswordFails(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Register(RegisterRequest{Username: "bob", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.Register(RegisterRequest{Username: "bob", Password: "correct-horse"})
	require.NoError(t, err)

	user, tokens, err := svc.Login(LoginRequest{Username: "bob", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, 0, user.QuizCount)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = svc.Login(LoginRequest{Username: "bob", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown users surface the same opaque error as wrong passwords.
	_, _, err = svc.Login(LoginRequest{Username: "nobody", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc := newTestService(t)
	_, tokens, err := svc.Register(RegisterRequest{Username: "bob", Password: "correct-horse"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// An access token is not a refresh token.
	_, err = svc.Refresh(tokens.AccessToken)
	assert.Error(t, err)
}

func TestMeReportsQuizCount(t *testing.T) {
	users := store.NewUserStore(filepath.Join(t.TempDir(), "users.json"), zerolog.Nop())
	svc := NewService(users, ServiceOptions{
		TokenConfig: jwt.TokenConfig{AccessSecret: []byte("s"), RefreshSecret: []byte("r")},
	}, zerolog.Nop())

	_, _, err := svc.Register(RegisterRequest{Username: "bob", Password: "correct-horse"})
	require.NoError(t, err)

	err = users.Update(func(m map[string]store.UserAccount) error {
		account := m["bob"]
		account.History = append(account.History, store.HistoryEntry{Date: "2024-03-02 11:00", TotalScore: "1/2"})
		m["bob"] = account
		return nil
	})
	require.NoError(t, err)

	me, err := svc.Me("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, me.QuizCount)
}

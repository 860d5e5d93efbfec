package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mcqapp/quiz-service/internal/auth"
	"github.com/mcqapp/quiz-service/internal/auth/jwt"
	"github.com/mcqapp/quiz-service/internal/config"
	"github.com/mcqapp/quiz-service/internal/history"
	"github.com/mcqapp/quiz-service/internal/question"
	"github.com/mcqapp/quiz-service/internal/server"
	"github.com/mcqapp/quiz-service/internal/session"
	"github.com/mcqapp/quiz-service/internal/store"
)

// newTestServer wires the full router against temp-dir stores, mirroring the
// app bootstrap.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dataDir := t.TempDir()
	cfg := &config.App{
		Name: "mcq-quiz-test",
		Env:  "test",
		Storage: config.Storage{
			DataDir:       dataDir,
			QuestionsFile: "questions.json",
			UsersFile:     "users.json",
		},
		Security: config.Security{JWTSecret: "integration-secret"},
		Quiz: config.Quiz{
			SessionTTL:   30 * time.Minute,
			ReapInterval: time.Minute,
		},
		CORS: config.CORS{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}
	logger := zerolog.Nop()

	bank := question.NewStore(cfg.Storage.QuestionsPath(), logger).Load()
	questionSvc := question.NewService(bank)
	userStore := store.NewUserStore(cfg.Storage.UsersPath(), logger)

	authSvc := auth.NewService(userStore, auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			AccessSecret:  []byte(cfg.Security.JWTSecret),
			RefreshSecret: []byte(cfg.Security.JWTSecret + "_refresh"),
			Issuer:        cfg.Name,
		},
	}, logger)

	recorder := history.NewRecorder(userStore, logger)
	manager := session.NewManager(cfg.Quiz.SessionTTL, logger)
	sessionSvc := session.NewService(questionSvc, manager, recorder, session.ServiceOptions{}, logger)

	handlers := server.Handlers{
		Auth:      auth.NewHTTPHandlers(authSvc, logger),
		AuthSvc:   authSvc,
		Questions: question.NewHTTPHandler(questionSvc, logger),
		Sessions:  session.NewHTTPHandler(sessionSvc, logger),
		Play:      session.NewWSHandler(sessionSvc, authSvc, logger),
		History:   history.NewHTTPHandler(recorder, logger),
	}

	ts := httptest.NewServer(server.NewMux(cfg, logger, handlers))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

// register creates a user and returns an access token.
func register(t *testing.T, baseURL, username string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, baseURL+"/v1/auth/register", "", map[string]string{
		"username": username,
		"password": "integration-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

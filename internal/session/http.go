package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/auth"
	"github.com/mcqapp/quiz-service/internal/session/scoring"
	httperrors "github.com/mcqapp/quiz-service/pkg/http/errors"
)

// HTTPHandler exposes the quiz session lifecycle over REST.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a session HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "session_http").Logger(),
	}
}

// HandleStart handles POST /v1/sessions
func (h *HTTPHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	result, err := h.svc.Start(username, req.Categories)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptySelection):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeEmptySelection, "Select at least one category")
		case errors.Is(err, ErrNoQuestions):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeNoQuestions, "Selected categories contain no questions")
		default:
			h.logger.Error().Err(err).Msg("session start failed")
			httperrors.RespondInternalError(w, "Could not start session")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":     result.ID.String(),
		"question_count": result.QuestionCount,
		"categories":     result.Categories,
	})
}

// HandleQuestion handles GET /v1/sessions/{id}/question
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	username, id, ok := h.sessionRef(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Current(username, id)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"order":     view.Order,
		"total":     view.Total,
		"category":  view.Category,
		"question":  view.Prompt,
		"options":   view.Options,
		"remaining": view.Remaining,
	})
}

// HandleAnswer handles POST /v1/sessions/{id}/answers
func (h *HTTPHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	username, id, ok := h.sessionRef(w, r)
	if !ok {
		return
	}

	var req struct {
		Choice int `json:"choice"` // 1-based option index
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	result, err := h.svc.Answer(username, id, req.Choice)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"correct":        result.Correct,
		"correct_option": result.CorrectOption,
		"remaining":      result.Remaining,
	})
}

// HandleFinish handles POST /v1/sessions/{id}/finish
func (h *HTTPHandler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	username, id, ok := h.sessionRef(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.Finish(username, id)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summaryPayload(summary))
}

func summaryPayload(summary scoring.Summary) map[string]interface{} {
	categories := make([]map[string]interface{}, len(summary.Categories))
	for i, c := range summary.Categories {
		categories[i] = map[string]interface{}{
			"category": c.Category,
			"score":    fmt.Sprintf("%d/%d", c.Correct, c.Attempted),
		}
	}
	return map[string]interface{}{
		"total_score": fmt.Sprintf("%d/%d", summary.Correct, summary.Attempted),
		"percentage":  summary.Percentage,
		"message":     summary.Message,
		"categories":  categories,
	}
}

func (h *HTTPHandler) sessionRef(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, bool) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return "", uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid session id")
		return "", uuid.Nil, false
	}
	return username, id, true
}

func (h *HTTPHandler) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "Session not found")
	case errors.Is(err, ErrSessionComplete):
		httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeSessionComplete, "All questions answered")
	case errors.Is(err, ErrInvalidChoice):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidChoice, "Choice out of range")
	default:
		h.logger.Error().Err(err).Msg("session operation failed")
		httperrors.RespondInternalError(w, "Session operation failed")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/auth"
	"github.com/mcqapp/quiz-service/internal/store"
	httperrors "github.com/mcqapp/quiz-service/pkg/http/errors"
)

// HTTPHandler exposes history review and CSV export.
type HTTPHandler struct {
	recorder *Recorder
	logger   zerolog.Logger
}

// NewHTTPHandler constructs a history HTTP handler.
func NewHTTPHandler(recorder *Recorder, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		recorder: recorder,
		logger:   logger.With().Str("component", "history_http").Logger(),
	}
}

// HandleList handles GET /v1/users/me/history
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"history": entries,
	}); err != nil {
		h.logger.Error().Err(err).Msg("encode history response")
	}
}

// HandleExport handles GET /v1/users/me/history/export
func (h *HTTPHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.load(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("quiz_history_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := WriteCSV(w, entries); err != nil {
		h.logger.Error().Err(err).Msg("csv export failed")
	}
}

func (h *HTTPHandler) load(w http.ResponseWriter, r *http.Request) ([]store.HistoryEntry, bool) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return nil, false
	}

	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return nil, false
	}

	entries, err := h.recorder.History(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "User not found")
			return nil, false
		}
		h.logger.Error().Err(err).Str("username", username).Msg("history fetch failed")
		httperrors.RespondInternalError(w, "Could not load history")
		return nil, false
	}
	return entries, true
}

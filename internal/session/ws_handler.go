package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/auth"
	httperrors "github.com/mcqapp/quiz-service/pkg/http/errors"
	ws "github.com/mcqapp/quiz-service/pkg/http/ws"
)

// upgrader accepts any origin: the service binds to loopback and is driven by
// local front ends.
var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSHandler drives interactive quiz play over a WebSocket: the client starts
// a session, answers questions one at a time, and receives the summary when
// done. It exercises the same Service as the REST endpoints.
type WSHandler struct {
	svc     *Service
	authSvc *auth.Service
	logger  zerolog.Logger
}

// NewWSHandler creates the play handler.
func NewWSHandler(svc *Service, authSvc *auth.Service, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		svc:     svc,
		authSvc: authSvc,
		logger:  logger.With().Str("component", "session_ws").Logger(),
	}
}

// HandlePlay handles GET /ws/play?token=...
func (h *WSHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Token required")
		return
	}
	claims, err := h.authSvc.ValidateToken(token)
	if err != nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid or expired token")
		return
	}

	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn := ws.NewConnection(rawConn)
	defer conn.Close()

	h.logger.Info().Str("username", claims.Username).Msg("play connection opened")
	h.serve(conn, claims.Username)
	h.logger.Info().Str("username", claims.Username).Msg("play connection closed")
}

func (h *WSHandler) serve(conn *ws.Connection, username string) {
	for {
		msg, err := conn.Read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Str("username", username).Msg("read error")
			}
			return
		}

		switch msg.Type {
		case ws.TypePing:
			h.send(conn, ws.Message{Type: ws.TypePong})
		case ws.TypeStartSession:
			h.handleStart(conn, username, msg)
		case ws.TypeSubmitAnswer:
			h.handleAnswer(conn, username, msg)
		case ws.TypeFinish:
			h.handleFinish(conn, username, msg)
		default:
			h.sendError(conn, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

func (h *WSHandler) handleStart(conn *ws.Connection, username string, msg ws.Message) {
	var payload ws.StartSessionPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(conn, httperrors.ErrCodeInvalidPayload, "invalid start_session payload")
		return
	}

	result, err := h.svc.Start(username, payload.Categories)
	if err != nil {
		h.sendServiceError(conn, err)
		return
	}

	h.pushQuestion(conn, username, result.ID)
}

func (h *WSHandler) handleAnswer(conn *ws.Connection, username string, msg ws.Message) {
	var payload ws.SubmitAnswerPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(conn, httperrors.ErrCodeInvalidPayload, "invalid submit_answer payload")
		return
	}
	id, err := uuid.Parse(payload.SessionID)
	if err != nil {
		h.sendError(conn, httperrors.ErrCodeInvalidPayload, "invalid session_id")
		return
	}

	result, err := h.svc.Answer(username, id, payload.Choice)
	if err != nil {
		h.sendServiceError(conn, err)
		return
	}

	out, err := ws.NewMessage(ws.TypeAnswerResult, ws.AnswerResultPayload{
		SessionID:     id.String(),
		Correct:       result.Correct,
		CorrectOption: result.CorrectOption,
		Remaining:     result.Remaining,
	})
	if err == nil {
		h.send(conn, out)
	}

	if result.Remaining > 0 {
		h.pushQuestion(conn, username, id)
		return
	}
	// Last answer in: score, record, and close out the session.
	h.finish(conn, username, id)
}

func (h *WSHandler) handleFinish(conn *ws.Connection, username string, msg ws.Message) {
	var payload ws.FinishPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(conn, httperrors.ErrCodeInvalidPayload, "invalid finish payload")
		return
	}
	id, err := uuid.Parse(payload.SessionID)
	if err != nil {
		h.sendError(conn, httperrors.ErrCodeInvalidPayload, "invalid session_id")
		return
	}
	h.finish(conn, username, id)
}

func (h *WSHandler) finish(conn *ws.Connection, username string, id uuid.UUID) {
	summary, err := h.svc.Finish(username, id)
	if err != nil {
		h.sendServiceError(conn, err)
		return
	}

	categories := make([]ws.CategoryResult, len(summary.Categories))
	for i, c := range summary.Categories {
		categories[i] = ws.CategoryResult{
			Category: c.Category,
			Score:    fmt.Sprintf("%d/%d", c.Correct, c.Attempted),
		}
	}
	out, err := ws.NewMessage(ws.TypeSessionComplete, ws.SessionCompletePayload{
		SessionID:  id.String(),
		TotalScore: fmt.Sprintf("%d/%d", summary.Correct, summary.Attempted),
		Percentage: summary.Percentage,
		Message:    summary.Message,
		Categories: categories,
	})
	if err == nil {
		h.send(conn, out)
	}
}

func (h *WSHandler) pushQuestion(conn *ws.Connection, username string, id uuid.UUID) {
	view, err := h.svc.Current(username, id)
	if err != nil {
		h.sendServiceError(conn, err)
		return
	}

	out, err := ws.NewMessage(ws.TypeQuestion, ws.QuestionPayload{
		SessionID: id.String(),
		Order:     view.Order,
		Total:     view.Total,
		Category:  view.Category,
		Question:  view.Prompt,
		Options:   view.Options,
	})
	if err == nil {
		h.send(conn, out)
	}
}

func (h *WSHandler) sendServiceError(conn *ws.Connection, err error) {
	code := httperrors.ErrCodeInternalError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		code = httperrors.ErrCodeSessionNotFound
	case errors.Is(err, ErrSessionComplete):
		code = httperrors.ErrCodeSessionComplete
	case errors.Is(err, ErrEmptySelection):
		code = httperrors.ErrCodeEmptySelection
	case errors.Is(err, ErrNoQuestions):
		code = httperrors.ErrCodeNoQuestions
	case errors.Is(err, ErrInvalidChoice):
		code = httperrors.ErrCodeInvalidChoice
	}
	h.sendError(conn, code, err.Error())
}

func (h *WSHandler) sendError(conn *ws.Connection, code, message string) {
	out, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	h.send(conn, out)
}

func (h *WSHandler) send(conn *ws.Connection, msg ws.Message) {
	if err := conn.Send(msg); err != nil {
		h.logger.Warn().Err(err).Msg("websocket send failed")
	}
}

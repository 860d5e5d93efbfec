package ws

import "encoding/json"

// MessageType constants for the quiz play protocol.
const (
	// Client -> Server
	TypeStartSession = "start_session"
	TypeSubmitAnswer = "submit_answer"
	TypeFinish       = "finish"
	TypePing         = "ping"

	// Server -> Client
	TypeQuestion        = "question"
	TypeAnswerResult    = "answer_result"
	TypeSessionComplete = "session_complete"
	TypeError           = "error"
	TypePong            = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"request_id,omitempty"`
}

// Client messages (incoming)

type StartSessionPayload struct {
	Categories []string `json:"categories"`
}

type SubmitAnswerPayload struct {
	SessionID string `json:"session_id"`
	Choice    int    `json:"choice"` // 1-based option index
}

type FinishPayload struct {
	SessionID string `json:"session_id"`
}

// Server messages (outgoing)

type QuestionPayload struct {
	SessionID string   `json:"session_id"`
	Order     int      `json:"order"`
	Total     int      `json:"total"`
	Category  string   `json:"category"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
}

type AnswerResultPayload struct {
	SessionID     string `json:"session_id"`
	Correct       bool   `json:"correct"`
	CorrectOption int    `json:"correct_option"`
	Remaining     int    `json:"remaining"`
}

type CategoryResult struct {
	Category string `json:"category"`
	Score    string `json:"score"`
}

type SessionCompletePayload struct {
	SessionID  string           `json:"session_id"`
	TotalScore string           `json:"total_score"`
	Percentage float64          `json:"percentage"`
	Message    string           `json:"message"`
	Categories []CategoryResult `json:"categories"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewMessage marshals payload into a typed envelope.
func NewMessage(msgType string, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: raw}, nil
}

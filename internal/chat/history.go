// Package chat keeps the per-user assistant conversation. History is
// deliberately ephemeral: it lives in process memory and is lost on restart.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"modforge-backend/internal/models"
)

const (
	TypeUser      = "user"
	TypeAssistant = "ai"
)

// Message is one entry in a user's conversation with the assistant.
// Assistant turns that produced code carry the full generation result so
// the frontend can re-render past suggestions from history alone.
type Message struct {
	ID            uuid.UUID                `json:"id"`
	Type          string                   `json:"type"`
	Content       string                   `json:"content"`
	FileContext   string                   `json:"file_context,omitempty"`
	GeneratedCode *models.GenerateResponse `json:"generated_code,omitempty"`
	Timestamp     time.Time                `json:"timestamp"`
}

// History stores conversations keyed by user id.
type History struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]Message
}

func NewHistory() *History {
	return &History{messages: make(map[uuid.UUID][]Message)}
}

// Append records a message and returns it with id and timestamp filled in.
func (h *History) Append(userID uuid.UUID, msgType, content, fileContext string) Message {
	msg := Message{
		ID:          uuid.New(),
		Type:        msgType,
		Content:     content,
		FileContext: fileContext,
		Timestamp:   time.Now().UTC(),
	}
	h.mu.Lock()
	h.messages[userID] = append(h.messages[userID], msg)
	h.mu.Unlock()
	return msg
}

// AppendGenerated records an assistant message together with the code it
// produced.
func (h *History) AppendGenerated(userID uuid.UUID, content, fileContext string, gen *models.GenerateResponse) Message {
	msg := Message{
		ID:            uuid.New(),
		Type:          TypeAssistant,
		Content:       content,
		FileContext:   fileContext,
		GeneratedCode: gen,
		Timestamp:     time.Now().UTC(),
	}
	h.mu.Lock()
	h.messages[userID] = append(h.messages[userID], msg)
	h.mu.Unlock()
	return msg
}

// List returns a copy of a user's conversation in insertion order.
func (h *History) List(userID uuid.UUID) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.messages[userID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Clear drops a user's conversation and reports how many messages were
// removed.
func (h *History) Clear(userID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.messages[userID])
	delete(h.messages, userID)
	return n
}

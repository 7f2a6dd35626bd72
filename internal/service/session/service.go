// Package session keeps the dev server's conversation state in memory.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session captures one transient anonymous conversation.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"createdAt"`
}

// Entry persists individual turns for transcript replay.
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service encapsulates session and transcript management.
type Service struct {
	mu          sync.RWMutex
	sessions    map[string]Session
	transcripts map[string][]Entry
}

// NewService bootstraps the in-memory store.
func NewService() *Service {
	return &Service{
		sessions:    make(map[string]Session),
		transcripts: make(map[string][]Entry),
	}
}

// Ensure resolves sessionID to an existing session, or provisions a fresh one
// when the id is empty or unknown. The second return reports whether a new
// session was created.
func (s *Service) Ensure(_ context.Context, sessionID, userID, locale string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if existing, ok := s.sessions[sessionID]; ok {
			return existing, false
		}
	}

	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Locale:    locale,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[session.ID] = session
	s.transcripts[session.ID] = make([]Entry, 0, 16)
	return session, true
}

// Append adds one message to the session transcript.
func (s *Service) Append(_ context.Context, sessionID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}

	s.transcripts[sessionID] = append(s.transcripts[sessionID], Entry{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// Transcript returns a copy of the stored messages for the session.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.transcripts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return copied, nil
}

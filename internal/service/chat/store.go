package chat

import (
	"context"
	"sync"
	"time"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
)

// Store is the append-only conversation log.
type Store interface {
	// Append assigns the next store-wide id, stamps the time and persists the turn.
	Append(ctx context.Context, role chat.Role, content, sessionID string) (chat.Turn, error)
	// ListBySession returns the session's turns ascending by id; unknown sessions yield an empty slice.
	ListBySession(ctx context.Context, sessionID string) ([]chat.Turn, error)
}

// MemoryStore keeps turns for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	sessions map[string][]chat.Turn
	now      func() time.Time
}

// NewMemoryStore bootstraps an empty in-memory store; ids start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		sessions: make(map[string][]chat.Turn),
		now:      time.Now,
	}
}

// Append stores a new turn. The id counter is taken under the same lock as the insert,
// so per-session slices stay sorted by id.
func (s *MemoryStore) Append(_ context.Context, role chat.Role, content, sessionID string) (chat.Turn, error) {
	if !role.Valid() {
		return chat.Turn{}, chat.ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turn := chat.Turn{
		ID:        s.nextID,
		Role:      role,
		Content:   content,
		SessionID: sessionID,
		CreatedAt: s.now().UTC(),
	}
	s.nextID++
	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
	return turn, nil
}

// ListBySession returns a copy of the session's turns.
func (s *MemoryStore) ListBySession(_ context.Context, sessionID string) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

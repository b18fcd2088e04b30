package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
)

type turnRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Role      string    `gorm:"size:16;not null"`
	Content   string    `gorm:"type:text;not null"`
	SessionID string    `gorm:"size:128;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (turnRecord) TableName() string { return "chat_turns" }

func (r turnRecord) toTurn() chat.Turn {
	return chat.Turn{
		ID:        r.ID,
		Role:      chat.Role(r.Role),
		Content:   r.Content,
		SessionID: r.SessionID,
		CreatedAt: r.CreatedAt,
	}
}

// ChatStore keeps turns in the chat_turns table; the autoincrement key is the turn id.
type ChatStore struct {
	db *gorm.DB
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{db: db}
}

func (s *ChatStore) Append(ctx context.Context, role chat.Role, content, sessionID string) (chat.Turn, error) {
	if !role.Valid() {
		return chat.Turn{}, chat.ErrInvalidRole
	}

	rec := turnRecord{
		Role:      string(role),
		Content:   content,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return chat.Turn{}, apperr.Storage("insert chat turn", err)
	}
	return rec.toTurn(), nil
}

func (s *ChatStore) ListBySession(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	var recs []turnRecord
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, apperr.Storage("select chat turns", err)
	}

	turns := make([]chat.Turn, 0, len(recs))
	for _, rec := range recs {
		turns = append(turns, rec.toTurn())
	}
	return turns, nil
}

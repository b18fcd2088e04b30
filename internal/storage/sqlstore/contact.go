package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/contact"
)

type contactRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:320;not null"`
	Subject   string    `gorm:"size:255;not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (contactRecord) TableName() string { return "contact_messages" }

// ContactStore keeps submissions in the contact_messages table.
type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(ctx context.Context, msg contact.Message) (contact.Message, error) {
	rec := contactRecord{
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return contact.Message{}, apperr.Storage("insert contact message", err)
	}
	msg.ID = rec.ID
	msg.CreatedAt = rec.CreatedAt
	return msg, nil
}

func (s *ContactStore) List(ctx context.Context) ([]contact.Message, error) {
	var recs []contactRecord
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, apperr.Storage("select contact messages", err)
	}

	out := make([]contact.Message, 0, len(recs))
	for _, rec := range recs {
		out = append(out, contact.Message{
			ID:        rec.ID,
			Name:      rec.Name,
			Email:     rec.Email,
			Subject:   rec.Subject,
			Message:   rec.Message,
			CreatedAt: rec.CreatedAt,
		})
	}
	return out, nil
}

package contact

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/contact"
)

// Store persists contact submissions.
type Store interface {
	Create(ctx context.Context, msg contact.Message) (contact.Message, error)
	// List returns every stored submission in insertion order.
	List(ctx context.Context) ([]contact.Message, error)
}

// Input is the contact-form payload.
type Input struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=2"`
	Message string `json:"message" validate:"required,min=10"`
}

// Service validates and stores contact submissions.
type Service struct {
	store    Store
	validate *validator.Validate
	log      *logger.Logger
}

// NewService builds a Service whose validation errors name fields by their JSON keys.
func NewService(store Store, log *logger.Logger) *Service {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return &Service{
		store:    store,
		validate: validate,
		log:      logger.OrNop(log),
	}
}

// Submit validates the trimmed input and stores it. Nothing is stored when validation fails.
func (s *Service) Submit(ctx context.Context, in Input) (contact.Message, error) {
	in = Input{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}

	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return contact.Message{}, apperr.Validation(fieldErrs[0].Field(), describe(fieldErrs[0]))
		}
		return contact.Message{}, apperr.Validation("", err.Error())
	}

	msg, err := s.store.Create(ctx, contact.Message{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		if apperr.KindOf(err) != "" {
			return contact.Message{}, err
		}
		return contact.Message{}, apperr.Storage("create contact message", err)
	}

	s.log.Info("contact message stored", "id", msg.ID, "subject", msg.Subject)
	return msg, nil
}

// List exposes the stored submissions.
func (s *Service) List(ctx context.Context) ([]contact.Message, error) {
	return s.store.List(ctx)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// MemoryStore keeps submissions for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	messages []contact.Message
}

// NewMemoryStore returns an empty store; ids start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(_ context.Context, msg contact.Message) (contact.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = s.nextID
	s.nextID++
	msg.CreatedAt = time.Now().UTC()
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *MemoryStore) List(_ context.Context) ([]contact.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]contact.Message, len(s.messages))
	copy(copied, s.messages)
	return copied, nil
}

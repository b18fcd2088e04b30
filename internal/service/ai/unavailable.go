package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
)

// ErrProviderUnavailable marks calls made while no completion provider could be configured.
var ErrProviderUnavailable = errors.New("completion provider unavailable")

// Unavailable stands in for the provider when credentials are missing, so chat requests still
// reach the store and then fail the way an auth rejection would.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Complete(context.Context, []chat.Turn) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrProviderUnavailable, u.Reason)
}

package recipient

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("route not found")
	ErrInvalidName  = errors.New("invalid recipient name")
	ErrInvalidRoute = errors.New("invalid route")
)

// Route is the stored Slack destination of a named recipient: a webhook URL
// or a user token.
type Route struct {
	recipient string
	value     string
	updatedAt time.Time
}

func NewRoute(recipient, value string) (*Route, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || strings.ContainsAny(recipient, " /:") {
		return nil, ErrInvalidName
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrInvalidRoute
	}
	return &Route{recipient: recipient, value: value, updatedAt: time.Now().UTC()}, nil
}

func RestoreRoute(recipient, value string, updatedAt time.Time) *Route {
	return &Route{recipient: recipient, value: value, updatedAt: updatedAt}
}

func (r *Route) Recipient() string    { return r.recipient }
func (r *Route) Value() string        { return r.value }
func (r *Route) UpdatedAt() time.Time { return r.updatedAt }

type Repository interface {
	Save(ctx context.Context, r *Route) error
	Find(ctx context.Context, recipient string) (*Route, error)
	Delete(ctx context.Context, recipient string) error
}

package domain

import (
	"context"
	"time"
)

// Turn roles. The log only ever stores these two; the "system" instruction
// is not a turn, it travels alongside every backend call.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one stored message in the conversation log. Turns are immutable
// once appended; the store never updates or deletes them. There is exactly
// one global conversation, so a turn's ID doubles as its position in it.
type Turn struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"` // optional base64 attachment, at most one per turn
	Timestamp time.Time `json:"timestamp"`
}

// TurnRepository is the durable append-only conversation log.
type TurnRepository interface {
	// Append inserts a new turn with a store-assigned ID and timestamp.
	// The write is flushed before Append returns.
	Append(ctx context.Context, role, content, image string) (*Turn, error)

	// Recent returns the most recent limit turns in ascending chronological
	// order (oldest first).
	Recent(ctx context.Context, limit int) ([]Turn, error)
}

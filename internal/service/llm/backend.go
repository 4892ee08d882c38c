package llm

import (
	"context"
	"fmt"
	"strings"

	"nova/internal/domain"
)

// Variant identifies which concrete backend serves a request. Resolution
// happens once at the boundary; nothing downstream re-inspects the model
// string.
type Variant int

const (
	// VariantCloudStreaming is the Gemini backend: incremental token
	// streaming, inline image parts, tool calling.
	VariantCloudStreaming Variant = iota

	// VariantLocalBatch is the locally hosted Ollama backend: one complete
	// response per call, images as a parallel base64 list.
	VariantLocalBatch
)

// ResolveVariant maps a model identifier to a backend variant. Identifiers
// in the gemini family go to the cloud; any other non-blank identifier is
// assumed to name a locally pulled model, since the local registry is an
// open namespace that cannot be enumerated statically. Blank identifiers
// are rejected rather than defaulted.
func ResolveVariant(model string) (Variant, error) {
	trimmed := strings.TrimSpace(model)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty model identifier", domain.ErrValidation)
	}
	if strings.Contains(trimmed, "gemini") {
		return VariantCloudStreaming, nil
	}
	return VariantLocalBatch, nil
}

// Request carries one generation call to either backend: the persona
// instruction, the assembled context window, and the incoming turn.
type Request struct {
	Model   string
	System  string
	History []domain.Turn
	Content string
	Image   string // optional base64 attachment on the incoming turn
}

// StreamEvent is one element of a backend response stream: a text fragment
// or a terminal error, never both. The batch backend produces a stream of
// exactly one fragment so the orchestrator relays both variants the same
// way.
type StreamEvent struct {
	Text string
	Err  error
}

// StreamingBackend produces a lazy, finite, non-restartable fragment
// sequence. The channel is closed after the final fragment or after a
// single terminal error event.
type StreamingBackend interface {
	StreamChat(ctx context.Context, req *Request) (<-chan StreamEvent, error)
}

// BatchBackend blocks until one complete response value is available.
type BatchBackend interface {
	Chat(ctx context.Context, req *Request) (string, error)
}

// ModelEntry is one selectable model as presented to the frontend.
type ModelEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ModelLister enumerates the models a backend currently offers.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelEntry, error)
}

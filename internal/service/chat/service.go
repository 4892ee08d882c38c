package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nova/internal/domain"
	"nova/internal/service/llm"
)

// IncomingMessage is the caller's half of one exchange.
type IncomingMessage struct {
	Content string
	Image   string // optional base64 attachment
}

// Orchestrator coordinates one conversation exchange end to end: assemble
// history, persist the incoming turn, dispatch to the backend selected by
// the model identifier, relay its output, and persist the produced turn.
//
// The incoming user turn is committed before the backend call, so it
// survives a backend failure. The assistant turn is committed only after
// the backend output is complete; a failed exchange persists nothing on
// the assistant side.
type Orchestrator struct {
	turns     domain.TurnRepository
	assembler *Assembler
	cloud     llm.StreamingBackend // nil when no API key is configured
	local     llm.BatchBackend
	system    string
	now       func() time.Time
	logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator. system is the persona
// instruction prepended to every backend call; cloud may be nil.
func NewOrchestrator(
	turns domain.TurnRepository,
	assembler *Assembler,
	cloud llm.StreamingBackend,
	local llm.BatchBackend,
	system string,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		turns:     turns,
		assembler: assembler,
		cloud:     cloud,
		local:     local,
		system:    system,
		now:       time.Now,
		logger:    logger,
	}
}

// Respond runs one exchange. The returned channel carries the backend's
// text fragments in order (a single fragment for the batch variant) and is
// closed when the exchange is over; a terminal error event means the
// exchange failed and no assistant turn was stored.
//
// Errors returned directly (rather than on the channel) occurred before
// dispatch: validation, history read, or the user-turn write.
func (s *Orchestrator) Respond(ctx context.Context, msg IncomingMessage, model string) (<-chan llm.StreamEvent, error) {
	// The trimmed form is what reaches the backend; stray whitespace in the
	// request must not leak into the upstream model name.
	model = strings.TrimSpace(model)

	variant, err := llm.ResolveVariant(model)
	if err != nil {
		return nil, err
	}
	if variant == llm.VariantCloudStreaming && s.cloud == nil {
		return nil, fmt.Errorf("%w: cloud backend is not configured", domain.ErrBackend)
	}

	history, err := s.assembler.Assemble(ctx, msg.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: load history: %v", domain.ErrStore, err)
	}

	// Commit the user turn before dispatch. Even if the backend call fails,
	// the user's message is never lost.
	if _, err := s.turns.Append(ctx, domain.RoleUser, msg.Content, msg.Image); err != nil {
		return nil, fmt.Errorf("%w: persist user turn: %v", domain.ErrStore, err)
	}

	req := &llm.Request{
		Model:   model,
		System:  s.systemInstruction(),
		History: history,
		Content: msg.Content,
		Image:   msg.Image,
	}

	// The backend call is deliberately detached from the request context:
	// if the caller disconnects mid-stream the generation runs to
	// completion and the assistant turn is still stored, so content the
	// caller never saw is not lost.
	backendCtx := context.WithoutCancel(ctx)

	out := make(chan llm.StreamEvent, 10)

	switch variant {
	case llm.VariantCloudStreaming:
		stream, err := s.cloud.StreamChat(backendCtx, req)
		if err != nil {
			return nil, err
		}
		go s.relayStream(ctx, stream, out)

	case llm.VariantLocalBatch:
		go s.relayBatch(ctx, backendCtx, req, out)
	}

	return out, nil
}

// relayStream forwards fragments as they arrive, accumulating them for the
// store write that happens once the stream is exhausted. On a mid-stream
// error the partial accumulation is discarded.
func (s *Orchestrator) relayStream(ctx context.Context, in <-chan llm.StreamEvent, out chan<- llm.StreamEvent) {
	defer close(out)

	var full strings.Builder
	for ev := range in {
		if ev.Err != nil {
			s.logger.Error("stream failed", "error", ev.Err, "forwarded_bytes", full.Len())
			s.deliver(ctx, out, ev)
			return
		}
		full.WriteString(ev.Text)
		s.deliver(ctx, out, ev)
	}

	if err := s.persistAssistant(ctx, full.String()); err != nil {
		s.deliver(ctx, out, llm.StreamEvent{Err: err})
	}
}

// relayBatch drives the batch backend: one blocking call, one forwarded
// value, then the store write.
func (s *Orchestrator) relayBatch(ctx, backendCtx context.Context, req *llm.Request, out chan<- llm.StreamEvent) {
	defer close(out)

	text, err := s.local.Chat(backendCtx, req)
	if err != nil {
		s.logger.Error("batch backend failed", "error", err, "model", req.Model)
		s.deliver(ctx, out, llm.StreamEvent{Err: err})
		return
	}

	s.deliver(ctx, out, llm.StreamEvent{Text: text})

	if err := s.persistAssistant(ctx, text); err != nil {
		s.deliver(ctx, out, llm.StreamEvent{Err: err})
	}
}

func (s *Orchestrator) persistAssistant(ctx context.Context, content string) error {
	// WithoutCancel: the write must happen even when the caller is gone.
	if _, err := s.turns.Append(context.WithoutCancel(ctx), domain.RoleAssistant, content, ""); err != nil {
		return fmt.Errorf("%w: persist assistant turn: %v", domain.ErrStore, err)
	}
	return nil
}

// deliver forwards an event unless the caller has disconnected, in which
// case the event is dropped; accumulation and persistence continue
// regardless.
func (s *Orchestrator) deliver(ctx context.Context, out chan<- llm.StreamEvent, ev llm.StreamEvent) {
	select {
	case out <- ev:
	case <-ctx.Done():
	}
}

// systemInstruction is the persona plus a dynamic time context, so the
// model can answer "what day is it" style questions.
func (s *Orchestrator) systemInstruction() string {
	return fmt.Sprintf("%s\n\nCurrent time: %s", s.system, s.now().Format("2006-01-02 15:04:05"))
}

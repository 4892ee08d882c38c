package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"nova/internal/config"
	"nova/internal/domain"
	"nova/internal/middleware"
	"nova/internal/service/chat"
	"nova/internal/service/llm"
)

// ErrorMarker prefixes every plain-text error body emitted by the chat
// endpoint, so the frontend can tell a failure apart from model output
// that happens to look like one.
const ErrorMarker = "[nova-error] "

// Responder runs one conversation exchange. Implemented by
// chat.Orchestrator; an interface so the handler is testable with a
// substitute.
type Responder interface {
	Respond(ctx context.Context, msg chat.IncomingMessage, model string) (<-chan llm.StreamEvent, error)
}

// ChatHandler handles POST /chat.
type ChatHandler struct {
	orchestrator Responder
	defaultModel string
	logger       *slog.Logger
}

// NewChatHandler creates a new chat handler. defaultModel is used when the
// request omits a model identifier.
func NewChatHandler(orchestrator Responder, defaultModel string, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
	Model    string        `json:"model,omitempty"`
}

// Validate checks the request shape. Only the last message is consumed as
// the incoming turn; earlier entries are the frontend's local echo of
// history and are ignored in favor of the server-side log.
func (req *chatRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Messages, validation.Required.Error("messages must not be empty")),
	)
}

// Chat runs one exchange and relays the backend output: chunked text for
// the streaming variant, a single body for the batch variant. Faults
// before any output became a marker-prefixed plain-text error with a real
// status code; faults mid-stream append the marker to whatever was already
// sent, since the status line is gone by then.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := parseJSON(w, r, &req, config.MaxChatBodyBytes); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	model := req.Model
	if model == "" {
		model = h.defaultModel
	}

	last := req.Messages[len(req.Messages)-1]
	incoming := chat.IncomingMessage{Content: last.Content, Image: last.Image}

	h.logger.Info("chat request",
		"model", model,
		"has_image", incoming.Image != "",
		"request_id", middleware.GetRequestID(r.Context()),
	)

	events, err := h.orchestrator.Respond(r.Context(), incoming, model)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrValidation) {
			status = http.StatusBadRequest
		}
		h.fail(w, status, err.Error())
		return
	}

	// Hold the status line until the first event, so a backend that fails
	// before producing anything still gets a proper 500.
	first, ok := <-events
	if ok && first.Err != nil {
		h.fail(w, http.StatusInternalServerError, first.Err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	write := func(text string) {
		io.WriteString(w, text)
		if flusher != nil {
			flusher.Flush()
		}
	}

	if ok {
		write(first.Text)
	}

	for ev := range events {
		if ev.Err != nil {
			write(fmt.Sprintf("\n%s%v", ErrorMarker, ev.Err))
			return
		}
		write(ev.Text)
	}
}

// fail writes a marker-prefixed plain-text error, per the chat endpoint's
// contract. JSON endpoints use httputil.RespondError instead.
func (h *ChatHandler) fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, ErrorMarker+msg)
}

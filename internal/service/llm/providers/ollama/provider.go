package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nova/internal/domain"
	"nova/internal/service/llm"
)

// Provider is the locally hosted batch backend, speaking the Ollama HTTP
// API. Roles pass through unchanged and image attachments travel as a
// parallel base64 list on each message rather than inline parts.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewProvider creates an Ollama provider for the given base URL
// (e.g. "http://localhost:11434").
func NewProvider(baseURL string, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// Generation on CPU-bound local hardware is slow; the timeout only
		// guards against a hung server, not a long completion.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		logger:     logger,
	}
}

// Wire types for the Ollama chat API.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Chat issues a single non-streaming request carrying the full mapped
// history plus the incoming turn and blocks until the complete response
// value is returned.
func (p *Provider) Chat(ctx context.Context, req *llm.Request) (string, error) {
	messages := make([]chatMessage, 0, len(req.History)+2)
	messages = append(messages, chatMessage{Role: "system", Content: req.System})

	for _, turn := range req.History {
		msg := chatMessage{Role: turn.Role, Content: turn.Content}
		if turn.Image != "" {
			msg.Images = []string{llm.StripDataURL(turn.Image)}
		}
		messages = append(messages, msg)
	}

	incoming := chatMessage{Role: domain.RoleUser, Content: req.Content}
	if req.Image != "" {
		incoming.Images = []string{llm.StripDataURL(req.Image)}
	}
	messages = append(messages, incoming)

	var resp chatResponse
	err := p.post(ctx, "/api/chat", chatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   false,
	}, &resp)
	if err != nil {
		return "", err
	}

	p.logger.Debug("ollama response", "model", req.Model, "bytes", len(resp.Message.Content))

	return resp.Message.Content, nil
}

// ListModels enumerates the locally pulled models.
func (p *Provider) ListModels(ctx context.Context) ([]llm.ModelEntry, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("build tags request: %w", err)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama tags: %v", domain.ErrBackend, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama tags: %s", domain.ErrBackend, readErrorBody(httpResp.Body))
	}

	var tags tagsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("%w: decode ollama tags: %v", domain.ErrBackend, err)
	}

	entries := make([]llm.ModelEntry, 0, len(tags.Models))
	for _, m := range tags.Models {
		entries = append(entries, llm.ModelEntry{ID: m.Name, Name: m.Name})
	}
	return entries, nil
}

func (p *Provider) post(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: ollama %s: %v", domain.ErrBackend, path, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama %s returned %d: %s",
			domain.ErrBackend, path, httpResp.StatusCode, readErrorBody(httpResp.Body))
	}

	if err := json.NewDecoder(httpResp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode ollama response: %v", domain.ErrBackend, err)
	}

	return nil
}

// readErrorBody returns a short snippet of an error response body for
// diagnostics.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(data) == 0 {
		return "(no body)"
	}
	return strings.TrimSpace(string(data))
}

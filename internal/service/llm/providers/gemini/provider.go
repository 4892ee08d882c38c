package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"nova/internal/domain"
	"nova/internal/service/llm"
)

// CalendarTool creates calendar events on behalf of the model.
type CalendarTool interface {
	CreateEvent(ctx context.Context, summary, startTime, endTime, description string) (link string, err error)
}

// AgentTool delegates OS actions to the remote PC agent.
type AgentTool interface {
	OpenApp(ctx context.Context, app string) (status string, err error)
}

// Provider is the cloud streaming/vision backend, built on the Gemini SDK.
// It maps stored roles {user, assistant} to the Gemini vocabulary
// {user, model}, attaches images as inline blob parts, and surfaces tool
// calls as formatted text fragments in the response stream.
type Provider struct {
	client   *genai.Client
	calendar CalendarTool
	agent    AgentTool
	logger   *slog.Logger
}

// NewProvider creates a Gemini provider. calendar and agent may be nil;
// tools that are not configured are not declared to the model.
func NewProvider(ctx context.Context, apiKey string, calendar CalendarTool, agent AgentTool, logger *slog.Logger) (*Provider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Provider{
		client:   client,
		calendar: calendar,
		agent:    agent,
		logger:   logger,
	}, nil
}

// Close releases the underlying API client.
func (p *Provider) Close() error {
	return p.client.Close()
}

// StreamChat starts a chat session seeded with the mapped history, submits
// the incoming turn, and emits text fragments as the API produces them.
// The returned channel is closed after the last fragment or after a single
// terminal error event; a stream that errors mid-way still delivers every
// fragment emitted before the fault.
func (p *Provider) StreamChat(ctx context.Context, req *llm.Request) (<-chan llm.StreamEvent, error) {
	model := p.client.GenerativeModel(req.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.System)},
	}
	if tools := p.toolDeclarations(); len(tools) > 0 {
		model.Tools = tools
	}

	history, err := historyContents(req.History)
	if err != nil {
		return nil, err
	}

	session := model.StartChat()
	session.History = history

	parts := []genai.Part{genai.Text(req.Content)}
	if req.Image != "" {
		format, data, err := llm.DecodeImage(req.Image)
		if err != nil {
			return nil, err
		}
		parts = append(parts, genai.ImageData(format, data))
	}

	iter := session.SendMessageStream(ctx, parts...)

	events := make(chan llm.StreamEvent, 10) // Buffered to prevent blocking

	go func() {
		defer close(events)

		for {
			resp, err := iter.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				events <- llm.StreamEvent{Err: fmt.Errorf("%w: gemini stream: %v", domain.ErrBackend, err)}
				return
			}

			for _, text := range p.fragmentTexts(ctx, resp) {
				select {
				case <-ctx.Done():
					events <- llm.StreamEvent{Err: fmt.Errorf("%w: %v", domain.ErrBackend, ctx.Err())}
					return
				case events <- llm.StreamEvent{Text: text}:
				}
			}
		}
	}()

	return events, nil
}

// fragmentTexts flattens one streamed response into text fragments,
// executing any tool call it carries.
func (p *Provider) fragmentTexts(ctx context.Context, resp *genai.GenerateContentResponse) []string {
	var texts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			switch v := part.(type) {
			case genai.Text:
				texts = append(texts, string(v))
			case genai.FunctionCall:
				texts = append(texts, p.dispatchTool(ctx, v))
			}
		}
	}
	return texts
}

// historyContents maps stored turns to Gemini chat history. Turns carrying
// an image get an inline blob part alongside the text part.
func historyContents(turns []domain.Turn) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == domain.RoleAssistant {
			role = "model"
		}

		parts := []genai.Part{genai.Text(turn.Content)}
		if turn.Image != "" {
			format, data, err := llm.DecodeImage(turn.Image)
			if err != nil {
				return nil, fmt.Errorf("turn %d: %w", turn.ID, err)
			}
			parts = append(parts, genai.ImageData(format, data))
		}

		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents, nil
}

// ListModels enumerates gemini-family models that support content
// generation.
func (p *Provider) ListModels(ctx context.Context) ([]llm.ModelEntry, error) {
	var entries []llm.ModelEntry

	it := p.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: list gemini models: %v", domain.ErrBackend, err)
		}

		id := strings.TrimPrefix(info.Name, "models/")
		if !strings.Contains(id, "gemini") || !supportsGeneration(info) {
			continue
		}

		name := info.DisplayName
		if name == "" {
			name = id
		}
		entries = append(entries, llm.ModelEntry{ID: id, Name: name})
	}

	return entries, nil
}

func supportsGeneration(info *genai.ModelInfo) bool {
	for _, method := range info.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

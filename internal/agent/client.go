package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client sends structured directives to the remote PC agent, the process
// running on the user's desktop that performs OS actions. The agent is an
// external collaborator; this client only speaks its wire interface:
// POST /execute {"action": ..., "target": ...} -> {"status", "message"}.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a PC agent client for the given base URL. The timeout
// is short: an offline desktop should degrade into a quick "agent offline"
// answer, not a hung chat turn.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type directive struct {
	Action string `json:"action"`
	Target string `json:"target"`
}

type agentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OpenApp asks the agent to launch a program and returns the agent's
// status string.
func (c *Client) OpenApp(ctx context.Context, app string) (string, error) {
	resp, err := c.execute(ctx, directive{Action: "open_app", Target: app})
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *Client) execute(ctx context.Context, d directive) (*agentResponse, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal directive: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build agent request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("pc agent offline: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pc agent returned %d", httpResp.StatusCode)
	}

	var resp agentResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode agent response: %w", err)
	}

	c.logger.Info("directive executed", "action", d.Action, "target", d.Target, "status", resp.Status)

	return &resp, nil
}

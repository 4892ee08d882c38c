package chat

import (
	"context"
	"log/slog"
	"strings"

	"nova/internal/domain"
)

// Assembler selects the bounded window of recent turns replayed to the
// backend on each request. Window size follows a two-tier policy: a small
// window for ordinary turns and a large one when the incoming content looks
// like a recall request ("summarize our conversation", "minns du..."). The
// check is a cheap lowercase substring containment test, not a classifier;
// false positives just replay more history.
type Assembler struct {
	turns    domain.TurnRepository
	keywords []string
	small    int
	large    int
	logger   *slog.Logger
}

// NewAssembler creates an Assembler with the given recall keyword set and
// window sizes.
func NewAssembler(turns domain.TurnRepository, keywords []string, small, large int, logger *slog.Logger) *Assembler {
	return &Assembler{
		turns:    turns,
		keywords: keywords,
		small:    small,
		large:    large,
		logger:   logger,
	}
}

// WindowSize returns the number of prior turns to replay for the given
// incoming content.
func (a *Assembler) WindowSize(content string) int {
	lower := strings.ToLower(content)
	for _, kw := range a.keywords {
		if strings.Contains(lower, kw) {
			return a.large
		}
	}
	return a.small
}

// Assemble reads the context window for an incoming message. It runs before
// the incoming turn is appended, so history means everything prior to this
// message. Note that under concurrent requests another caller's user turn
// may already be committed when this read happens; the log is a single
// global conversation and appends are not serialized across requests.
func (a *Assembler) Assemble(ctx context.Context, content string) ([]domain.Turn, error) {
	window := a.WindowSize(content)

	turns, err := a.turns.Recent(ctx, window)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("context assembled", "window", window, "turns", len(turns))

	return turns, nil
}

package chat

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"nova/internal/config"
	"nova/internal/domain"
)

// recordingRepo captures the limit passed to Recent.
type recordingRepo struct {
	lastLimit int
	turns     []domain.Turn
}

func (r *recordingRepo) Append(ctx context.Context, role, content, image string) (*domain.Turn, error) {
	turn := domain.Turn{ID: int64(len(r.turns) + 1), Role: role, Content: content, Image: image}
	r.turns = append(r.turns, turn)
	return &turn, nil
}

func (r *recordingRepo) Recent(ctx context.Context, limit int) ([]domain.Turn, error) {
	r.lastLimit = limit
	if limit >= len(r.turns) {
		return append([]domain.Turn(nil), r.turns...), nil
	}
	return append([]domain.Turn(nil), r.turns[len(r.turns)-limit:]...), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWindowSizePolicy(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{
			name:    "ordinary message uses the small window",
			content: "hej, hur är läget?",
			want:    config.SmallContextWindow,
		},
		{
			name:    "swedish recall phrase uses the large window",
			content: "kan du sammanfatta vårt samtal",
			want:    config.LargeContextWindow,
		},
		{
			name:    "matching is case-insensitive",
			content: "SUMMARIZE what we talked about",
			want:    config.LargeContextWindow,
		},
		{
			name:    "english recall phrase",
			content: "do you remember my sister's name?",
			want:    config.LargeContextWindow,
		},
		{
			name:    "keyword inside a longer word still matches",
			content: "please recalling", // substring test, not word boundary
			want:    config.LargeContextWindow,
		},
		{
			name:    "empty content uses the small window",
			content: "",
			want:    config.SmallContextWindow,
		},
	}

	a := NewAssembler(&recordingRepo{}, config.DefaultRecallKeywords,
		config.SmallContextWindow, config.LargeContextWindow, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.WindowSize(tt.content); got != tt.want {
				t.Errorf("WindowSize(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestAssemblePassesWindowToStore(t *testing.T) {
	repo := &recordingRepo{}
	a := NewAssembler(repo, config.DefaultRecallKeywords,
		config.SmallContextWindow, config.LargeContextWindow, testLogger())

	if _, err := a.Assemble(context.Background(), "kan du sammanfatta vårt samtal"); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if repo.lastLimit != config.LargeContextWindow {
		t.Errorf("recall message read %d turns, want %d", repo.lastLimit, config.LargeContextWindow)
	}

	if _, err := a.Assemble(context.Background(), "hej"); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if repo.lastLimit != config.SmallContextWindow {
		t.Errorf("ordinary message read %d turns, want %d", repo.lastLimit, config.SmallContextWindow)
	}
}

func TestCustomKeywordSet(t *testing.T) {
	a := NewAssembler(&recordingRepo{}, []string{"résume"}, 10, 20, testLogger())

	if got := a.WindowSize("peux-tu résume notre conversation"); got != 20 {
		t.Errorf("custom keyword did not trigger the large window, got %d", got)
	}
	if got := a.WindowSize("sammanfatta"); got != 10 {
		t.Errorf("default keyword should not match with a custom set, got %d", got)
	}
}

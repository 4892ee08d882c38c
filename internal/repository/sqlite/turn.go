package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"nova/internal/domain"
)

// TurnRepository implements domain.TurnRepository on the SQLite turns table.
type TurnRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTurnRepository creates a new TurnRepository
func NewTurnRepository(db *sql.DB, logger *slog.Logger) *TurnRepository {
	return &TurnRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts a new turn at the end of the log. ID and timestamp are
// assigned here, never by the caller; an empty image is stored as NULL.
func (r *TurnRepository) Append(ctx context.Context, role, content, image string) (*domain.Turn, error) {
	turn := &domain.Turn{
		Role:      role,
		Content:   content,
		Image:     image,
		Timestamp: time.Now().UTC(),
	}

	var img any
	if image != "" {
		img = image
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO turns (role, content, image, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, role, content, img, turn.Timestamp).Scan(&turn.ID)
	if err != nil {
		return nil, fmt.Errorf("append turn: %w", err)
	}

	r.logger.Debug("turn appended", "id", turn.ID, "role", role, "has_image", image != "")

	return turn, nil
}

// Recent returns the most recent limit turns in ascending chronological
// order. It takes the last N by id and then reorders ascending; scanning
// ascending with a LIMIT would return the oldest turns instead of the
// latest.
func (r *TurnRepository) Recent(ctx context.Context, limit int) ([]domain.Turn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, role, content, image, created_at
		FROM turns
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var turn domain.Turn
		var image sql.NullString
		if err := rows.Scan(&turn.ID, &turn.Role, &turn.Content, &image, &turn.Timestamp); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turn.Image = image.String
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent turns: %w", err)
	}

	// Reverse into insertion order (oldest first).
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	return turns, nil
}

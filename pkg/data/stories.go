package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kerbaras/storytime/pkg/story"
)

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", story.ErrPersistence, op, err)
}

// SaveStory inserts the story or replaces a stored story with the same id.
func (r *Repository) SaveStory(ctx context.Context, s *story.Story) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("%w: story id is required", story.ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin", err)
	}
	defer tx.Rollback()

	var rating sql.NullInt64
	if s.Rated() {
		rating = sql.NullInt64{Int64: int64(s.Rating), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO stories (id, user_id, title, theme, mood, setting, created_at, rating, audio_generated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Title, s.Prompt.Theme, s.Prompt.Mood, s.Prompt.Setting,
		s.CreatedAt.UTC(), rating, s.AudioGenerated,
	)
	if err != nil {
		return persistErr("save story", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM story_characters WHERE story_id = ?`, s.ID); err != nil {
		return persistErr("clear characters", err)
	}
	for i, name := range s.Prompt.Characters {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO story_characters (story_id, ordinal, name) VALUES (?, ?, ?)`,
			s.ID, i, name,
		); err != nil {
			return persistErr("save character", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM story_pages WHERE story_id = ?`, s.ID); err != nil {
		return persistErr("clear pages", err)
	}
	for _, p := range s.Pages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO story_pages (story_id, page_number, body, illustration) VALUES (?, ?, ?, ?)`,
			s.ID, p.Number, p.Text, p.Illustration,
		); err != nil {
			return persistErr("save page", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit", err)
	}
	return nil
}

// GetStory loads a story with its characters and pages.
func (r *Repository) GetStory(ctx context.Context, id string) (*story.Story, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, theme, mood, setting, created_at, rating, audio_generated
		FROM stories WHERE id = ?`, id)

	s, err := scanStory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", story.ErrNotFound, id)
	}
	if err != nil {
		return nil, persistErr("get story", err)
	}

	if err := r.loadChildren(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListStories returns the stories of a user, newest first. An empty userID
// lists every story.
func (r *Repository) ListStories(ctx context.Context, userID string) ([]*story.Story, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, theme, mood, setting, created_at, rating, audio_generated
		FROM stories
		WHERE ? = '' OR user_id = ?
		ORDER BY created_at DESC, id`, userID, userID)
	if err != nil {
		return nil, persistErr("list stories", err)
	}
	defer rows.Close()

	var stories []*story.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, persistErr("scan story", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list stories", err)
	}

	for _, s := range stories {
		if err := r.loadChildren(ctx, s); err != nil {
			return nil, err
		}
	}
	return stories, nil
}

// RateStory sets the rating of a stored story.
func (r *Repository) RateStory(ctx context.Context, id string, rating int) error {
	if err := story.ValidateRating(rating); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `UPDATE stories SET rating = ? WHERE id = ?`, rating, id)
	if err != nil {
		return persistErr("rate story", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr("rate story", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", story.ErrNotFound, id)
	}
	return nil
}

func (r *Repository) DeleteStory(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		return persistErr("delete story", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr("delete story", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", story.ErrNotFound, id)
	}

	for _, table := range []string{"story_characters", "story_pages"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE story_id = ?`, id); err != nil {
			return persistErr("delete "+table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStory(row scanner) (*story.Story, error) {
	var (
		s      story.Story
		rating sql.NullInt64
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.Title,
		&s.Prompt.Theme, &s.Prompt.Mood, &s.Prompt.Setting,
		&s.CreatedAt, &rating, &s.AudioGenerated,
	)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		s.Rating = int(rating.Int64)
	}
	return &s, nil
}

func (r *Repository) loadChildren(ctx context.Context, s *story.Story) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM story_characters WHERE story_id = ? ORDER BY ordinal`, s.ID)
	if err != nil {
		return persistErr("load characters", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return persistErr("scan character", err)
		}
		s.Prompt.Characters = append(s.Prompt.Characters, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return persistErr("load characters", err)
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT page_number, body, illustration FROM story_pages WHERE story_id = ? ORDER BY page_number`, s.ID)
	if err != nil {
		return persistErr("load pages", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p story.Page
		if err := rows.Scan(&p.Number, &p.Text, &p.Illustration); err != nil {
			return persistErr("scan page", err)
		}
		s.Pages = append(s.Pages, p)
	}
	if err := rows.Err(); err != nil {
		return persistErr("load pages", err)
	}
	return nil
}

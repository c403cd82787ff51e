package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

var _ repository.SiteTextRepository = (*SiteTextRepo)(nil)

// SiteTextRepo stores editable site copy, looked up by key.
type SiteTextRepo struct {
	conn *sql.DB
}

// Create inserts a new site text. Site texts are normally created only by
// the seed step; the admin panel edits values of existing keys.
func (r *SiteTextRepo) Create(ctx context.Context, text *model.SiteText) error {
	text.ID = xid.New().String()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO site_texts (id, key, value, description)
		 VALUES (?, ?, ?, ?)`,
		text.ID,
		text.Key,
		text.Value,
		text.Description,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating site text %q: %w", text.Key, err)
	}

	return nil
}

// List returns all site texts in seed order (xid ids sort by creation time).
func (r *SiteTextRepo) List(ctx context.Context) ([]model.SiteText, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, key, value, description FROM site_texts ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing site texts: %w", err)
	}
	defer rows.Close()

	texts := []model.SiteText{}
	for rows.Next() {
		var t model.SiteText
		if err := rows.Scan(&t.ID, &t.Key, &t.Value, &t.Description); err != nil {
			return nil, fmt.Errorf("sqlite: scanning site text row: %w", err)
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating site texts: %w", err)
	}

	return texts, nil
}

// GetValue resolves a text key to its stored value.
//
// FALLBACK-TO-KEY LAW: an unknown key returns the key itself, never an
// error. The storefront renders whatever comes back, so a missing text
// degrades to showing its key instead of breaking the page.
func (r *SiteTextRepo) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.conn.QueryRowContext(ctx,
		`SELECT value FROM site_texts WHERE key = ?`,
		key,
	).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return key, nil
		}
		return "", fmt.Errorf("sqlite: getting site text %q: %w", key, err)
	}

	return value, nil
}

// UpdateValue overwrites the value for an existing key. Unlike GetValue,
// writing to an unknown key IS an error — edits must target seeded copy.
func (r *SiteTextRepo) UpdateValue(ctx context.Context, key, value string) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE site_texts SET value = ? WHERE key = ?`,
		value, key,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating site text %q: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("site text", key)
	}

	return nil
}

// Delete removes a site text by its ID.
func (r *SiteTextRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM site_texts WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting site text %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("site text", id)
	}

	return nil
}

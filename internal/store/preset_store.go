package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/joestump/prompt-library/internal/prompt"
)

// Preset is a named, persisted set of prompt options.
type Preset struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Description      string    `db:"description"`
	WorkingDirectory string    `db:"working_directory"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`

	// AllowedTags is loaded from preset_tags in position order.
	AllowedTags []string `db:"-"`
}

// Options converts the preset into renderer options.
func (p *Preset) Options() prompt.Options {
	return prompt.Options{
		WorkingDirectory: p.WorkingDirectory,
		AllowedTags:      append([]string(nil), p.AllowedTags...),
	}
}

// PresetInput carries the writable fields of a preset.
type PresetInput struct {
	Name             string
	Description      string
	WorkingDirectory string
	AllowedTags      []string
}

type presetTag struct {
	PresetID string `db:"preset_id"`
	Position int    `db:"position"`
	Name     string `db:"name"`
}

// PresetStore is the sqlx-backed implementation of PresetStoreIface.
type PresetStore struct {
	db *sqlx.DB
}

func NewPresetStore(db *sqlx.DB) *PresetStore {
	return &PresetStore{db: db}
}

// Create inserts a preset and its tags in one transaction.
func (s *PresetStore) Create(ctx context.Context, in PresetInput) (*Preset, error) {
	if err := ValidateName(in.Name); err != nil {
		return nil, err
	}

	var id string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = insertPreset(ctx, tx, in, time.Now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByName returns the preset named name, or ErrNotFound.
func (s *PresetStore) GetByName(ctx context.Context, name string) (*Preset, error) {
	return s.getOne(ctx, `SELECT * FROM presets WHERE name = ?`, name)
}

// GetByID returns the preset with the given id, or ErrNotFound.
func (s *PresetStore) GetByID(ctx context.Context, id string) (*Preset, error) {
	return s.getOne(ctx, `SELECT * FROM presets WHERE id = ?`, id)
}

func (s *PresetStore) getOne(ctx context.Context, query string, arg any) (*Preset, error) {
	var p Preset
	err := s.db.GetContext(ctx, &p, s.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var tags []string
	err = s.db.SelectContext(ctx, &tags, s.db.Rebind(
		`SELECT name FROM preset_tags WHERE preset_id = ? ORDER BY position ASC`), p.ID)
	if err != nil {
		return nil, err
	}
	p.AllowedTags = nonNil(tags)
	return &p, nil
}

// List returns all presets ordered by name, each with its tags.
func (s *PresetStore) List(ctx context.Context) ([]*Preset, error) {
	var presets []*Preset
	if err := s.db.SelectContext(ctx, &presets, `SELECT * FROM presets ORDER BY name ASC`); err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return presets, nil
	}

	var rows []presetTag
	err := s.db.SelectContext(ctx, &rows,
		`SELECT preset_id, position, name FROM preset_tags ORDER BY preset_id ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	byPreset := make(map[string][]string, len(presets))
	for _, r := range rows {
		byPreset[r.PresetID] = append(byPreset[r.PresetID], r.Name)
	}
	for _, p := range presets {
		p.AllowedTags = nonNil(byPreset[p.ID])
	}
	return presets, nil
}

// Update replaces the description, working directory and tags of the preset
// named name. Names are immutable; in.Name is ignored.
func (s *PresetStore) Update(ctx context.Context, name string, in PresetInput) (*Preset, error) {
	existing, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		return updatePreset(ctx, tx, existing.ID, in, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, existing.ID)
}

// Delete removes the preset named name and its tags.
func (s *PresetStore) Delete(ctx context.Context, name string) error {
	existing, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM preset_tags WHERE preset_id = ?`), existing.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM presets WHERE id = ?`), existing.ID)
		return err
	})
}

// Import creates or replaces every preset in inputs within a single
// transaction. All names are validated before anything is written, and any
// failure leaves the store unchanged.
func (s *PresetStore) Import(ctx context.Context, inputs []PresetInput) (created, updated int, err error) {
	for _, in := range inputs {
		if err := ValidateName(in.Name); err != nil {
			return 0, 0, fmt.Errorf("preset %q: %w", in.Name, err)
		}
	}

	now := time.Now().UTC()
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		created, updated = 0, 0
		for _, in := range inputs {
			var id string
			err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM presets WHERE name = ?`), in.Name)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				if _, err := insertPreset(ctx, tx, in, now); err != nil {
					return fmt.Errorf("preset %q: %w", in.Name, err)
				}
				created++
			case err != nil:
				return fmt.Errorf("preset %q: %w", in.Name, err)
			default:
				if err := updatePreset(ctx, tx, id, in, now); err != nil {
					return fmt.Errorf("preset %q: %w", in.Name, err)
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

// Count returns the number of stored presets.
func (s *PresetStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM presets`); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PresetStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertPreset(ctx context.Context, tx *sqlx.Tx, in PresetInput, now time.Time) (string, error) {
	id := uuid.New().String()
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO presets (id, name, description, working_directory, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), id, in.Name, in.Description, in.WorkingDirectory, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return "", fmt.Errorf("%w: %q", ErrNameTaken, in.Name)
		}
		return "", err
	}
	return id, replaceTags(ctx, tx, id, in.AllowedTags)
}

func updatePreset(ctx context.Context, tx *sqlx.Tx, id string, in PresetInput, now time.Time) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE presets SET description = ?, working_directory = ?, updated_at = ? WHERE id = ?
	`), in.Description, in.WorkingDirectory, now, id)
	if err != nil {
		return err
	}
	return replaceTags(ctx, tx, id, in.AllowedTags)
}

// replaceTags rewrites the ordered tag rows for a preset.
func replaceTags(ctx context.Context, tx *sqlx.Tx, presetID string, tags []string) error {
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM preset_tags WHERE preset_id = ?`), presetID); err != nil {
		return err
	}
	for i, name := range tags {
		_, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO preset_tags (preset_id, position, name) VALUES (?, ?, ?)
		`), presetID, i, name)
		if err != nil {
			return err
		}
	}
	return nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

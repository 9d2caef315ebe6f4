package store

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNameTaken is returned when a preset name already exists.
	ErrNameTaken = errors.New("preset name is already taken")
)

// PresetStoreIface exposes all preset data operations.
// Handlers and commands never query the DB directly.
type PresetStoreIface interface {
	Create(ctx context.Context, in PresetInput) (*Preset, error)
	GetByName(ctx context.Context, name string) (*Preset, error)
	GetByID(ctx context.Context, id string) (*Preset, error)
	List(ctx context.Context) ([]*Preset, error)
	Update(ctx context.Context, name string, in PresetInput) (*Preset, error)
	Delete(ctx context.Context, name string) error
	Count(ctx context.Context) (int, error)
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}

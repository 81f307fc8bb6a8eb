package settings

import (
	"context"
)

// Repository defines the interface for settings persistence operations
type Repository interface {
	// GetByKey returns the stored setting or an ErrNotFound marked error
	GetByKey(ctx context.Context, key SettingKey) (*Setting, error)
	// Upsert creates or replaces the setting with the same key
	Upsert(ctx context.Context, setting *Setting) error
}

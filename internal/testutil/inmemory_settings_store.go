package testutil

import (
	"context"
	"time"

	domainSettings "github.com/factuurdesk/factuurdesk/internal/domain/settings"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
)

// InMemorySettingsStore implements an in-memory settings repository for testing
type InMemorySettingsStore struct {
	*InMemoryStore[*domainSettings.Setting]
	// Err, when set, is returned by every call
	Err error
	// Reads counts GetByKey calls
	Reads int
}

// NewInMemorySettingsStore creates a new in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		InMemoryStore: NewInMemoryStore[*domainSettings.Setting](),
	}
}

// GetByKey retrieves a setting by key
func (s *InMemorySettingsStore) GetByKey(ctx context.Context, key domainSettings.SettingKey) (*domainSettings.Setting, error) {
	s.mu.Lock()
	s.Reads++
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	setting, err := s.InMemoryStore.Get(ctx, string(key))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Setting %s was not found", key).
			WithReportableDetails(map[string]any{
				"key": key,
			}).
			Mark(ierr.ErrNotFound)
	}
	return setting, nil
}

// Upsert creates or replaces the setting stored under the same key
func (s *InMemorySettingsStore) Upsert(ctx context.Context, setting *domainSettings.Setting) error {
	if s.Err != nil {
		return s.Err
	}
	if err := setting.Validate(); err != nil {
		return err
	}
	stored := *setting
	stored.UpdatedAt = time.Now().UTC()
	s.InMemoryStore.Put(ctx, string(setting.Key), &stored)
	return nil
}

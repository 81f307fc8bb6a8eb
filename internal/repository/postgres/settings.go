package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domainSettings "github.com/factuurdesk/factuurdesk/internal/domain/settings"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/postgres"
)

type settingsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

type settingRow struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) domainSettings.Repository {
	return &settingsRepository{db: db, logger: logger}
}

func (r *settingsRepository) GetByKey(ctx context.Context, key domainSettings.SettingKey) (*domainSettings.Setting, error) {
	var row settingRow
	err := r.db.GetQuerier(ctx).GetContext(ctx, &row, `SELECT key, value, updated_at FROM settings WHERE key = $1`, string(key))
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("setting %s not found", key).
			WithHintf("Setting %s was not found", key).
			WithReportableDetails(map[string]any{"key": key}).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get setting").
			Mark(ierr.ErrDatabase)
	}

	setting := &domainSettings.Setting{
		Key:       domainSettings.SettingKey(row.Key),
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal(row.Value, &setting.Value); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Stored setting %s is not readable", key).
			Mark(ierr.ErrDatabase)
	}
	return setting, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, setting *domainSettings.Setting) error {
	if err := setting.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(setting.Value)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Setting value could not be serialized").
			Mark(ierr.ErrValidation)
	}
	setting.UpdatedAt = time.Now().UTC()

	r.logger.Debugw("upserting setting", "key", setting.Key)

	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, string(setting.Key), value, setting.UpdatedAt); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save setting").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type settingRepositoryImpl struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepositoryImpl{db: db}
}

const settingColumns = `id, key, value, data_type, description, created_at, updated_at, deleted_at`

func scanSetting(row pgx.Row) (setting.Setting, error) {
	var s setting.Setting
	var value []byte
	err := row.Scan(&s.ID, &s.Key, &value, &s.DataType, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	s.Value = value
	return s, err
}

// Upsert implements setting.SettingRepository.
func (r *settingRepositoryImpl) Upsert(ctx context.Context, s setting.Setting) (setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return setting.Setting{}, fmt.Errorf("failed to generate setting id: %w", err)
	}

	query := `
		INSERT INTO settings (id, key, value, data_type, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			data_type = EXCLUDED.data_type,
			description = COALESCE(EXCLUDED.description, settings.description),
			deleted_at = NULL,
			updated_at = NOW()
		RETURNING ` + settingColumns
	saved, err := scanSetting(q.QueryRow(ctx, query, id.String(), s.Key, []byte(s.Value), s.DataType, s.Description))
	if err != nil {
		return setting.Setting{}, fmt.Errorf("failed to upsert setting %s: %w", s.Key, err)
	}
	return saved, nil
}

// UpsertMany implements setting.SettingRepository.
func (r *settingRepositoryImpl) UpsertMany(ctx context.Context, settings []setting.Setting) ([]setting.Setting, error) {
	saved := make([]setting.Setting, 0, len(settings))
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, s := range settings {
			out, err := r.Upsert(ctx, s)
			if err != nil {
				return err
			}
			saved = append(saved, out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetByKey implements setting.SettingRepository.
func (r *settingRepositoryImpl) GetByKey(ctx context.Context, key string) (setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSetting(q.QueryRow(ctx, "SELECT "+settingColumns+" FROM settings WHERE key = $1 AND "+liveRows(""), key))
	if err != nil {
		if isNoRows(err) {
			return setting.Setting{}, setting.ErrSettingNotFound
		}
		return setting.Setting{}, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return s, nil
}

// GetByKeys implements setting.SettingRepository. Missing keys are absent from the result.
func (r *settingRepositoryImpl) GetByKeys(ctx context.Context, keys []string) (map[string]setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+settingColumns+" FROM settings WHERE key = ANY($1) AND "+liveRows(""), keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]setting.Setting, len(keys))
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		result[s.Key] = s
	}
	return result, rows.Err()
}

// FindAll implements setting.SettingRepository.
func (r *settingRepositoryImpl) FindAll(ctx context.Context, includeDeleted bool) ([]setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	where.live("", includeDeleted)
	rows, err := q.Query(ctx, "SELECT "+settingColumns+" FROM settings "+where.String()+" ORDER BY key", where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := make([]setting.Setting, 0)
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// SoftDelete implements setting.SettingRepository.
func (r *settingRepositoryImpl) SoftDelete(ctx context.Context, key string) error {
	return softDelete(ctx, GetQuerier(ctx, r.db), "settings", "key", key, setting.ErrSettingNotFound)
}

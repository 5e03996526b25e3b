package setting

import "context"

type SettingRepository interface {
	// Upsert inserts the setting or updates value, data type and description of
	// an existing key. A soft-deleted key is revived.
	Upsert(ctx context.Context, s Setting) (Setting, error)
	// UpsertMany applies all upserts in one transaction.
	UpsertMany(ctx context.Context, settings []Setting) ([]Setting, error)
	GetByKey(ctx context.Context, key string) (Setting, error)
	GetByKeys(ctx context.Context, keys []string) (map[string]Setting, error)
	FindAll(ctx context.Context, includeDeleted bool) ([]Setting, error)
	SoftDelete(ctx context.Context, key string) error
}

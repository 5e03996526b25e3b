package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	key := "departments:all"
	ttl := 10 * time.Minute
	items := []item{{ID: "d1", Name: "HR"}, {ID: "d2", Name: "IT"}}
	payload, err := json.Marshal(items)
	require.NoError(t, err)

	t.Run("hit returns cached value without loading", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := New(rdb, ttl)
		mock.ExpectGet(key).SetVal(string(payload))

		got, err := Remember(ctx, c, key, func(ctx context.Context) ([]item, error) {
			t.Fatal("load must not be called on a hit")
			return nil, nil
		})
		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := New(rdb, ttl)
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, string(payload), ttl).SetVal("OK")

		calls := 0
		got, err := Remember(ctx, c, key, func(ctx context.Context) ([]item, error) {
			calls++
			return items, nil
		})
		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("load error is returned and nothing is stored", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := New(rdb, ttl)
		mock.ExpectGet(key).RedisNil()
		loadErr := errors.New("db down")

		_, err := Remember(ctx, c, key, func(ctx context.Context) ([]item, error) {
			return nil, loadErr
		})
		assert.ErrorIs(t, err, loadErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil cache always loads", func(t *testing.T) {
		var c *Cache
		got, err := Remember(ctx, c, key, func(ctx context.Context) ([]item, error) {
			return items, nil
		})
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})
}

func TestInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := New(rdb, time.Minute)
	mock.ExpectDel("holidays:2024", "departments:all").SetVal(2)

	c.Invalidate(context.Background(), "holidays:2024", "departments:all")
	assert.NoError(t, mock.ExpectationsWereMet())

	New(nil, time.Minute).Invalidate(context.Background(), "ignored")
}

func TestInvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	c := New(rdb, time.Minute)

	mock.ExpectScan(0, "holidays:*", 100).SetVal([]string{"holidays:2024", "holidays:2025"}, 0)
	mock.ExpectDel("holidays:2024", "holidays:2025").SetVal(2)

	c.InvalidatePrefix(ctx, "holidays:")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidatePrefix_NilCache(t *testing.T) {
	var c *Cache
	assert.NotPanics(t, func() { c.InvalidatePrefix(context.Background(), "holidays:") })
}

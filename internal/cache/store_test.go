package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entryRecord{}))

	return db
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(setupTestDB(t), 15*time.Minute, zap.NewNop().Sugar())
}

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SetGet(t *testing.T) {
	t.Run("round trip with large ttl", func(t *testing.T) {
		store := setupStore(t)

		want := testPayload{Name: "alice", Count: 7}
		require.NoError(t, Set(store, "metrics_v2_sprint", want, time.Hour))

		got, ok := Get[testPayload](store, "metrics_v2_sprint")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		store := setupStore(t)

		_, ok := Get[testPayload](store, "missing")
		assert.False(t, ok)
	})

	t.Run("overwrite keeps last write", func(t *testing.T) {
		store := setupStore(t)

		require.NoError(t, Set(store, "k", testPayload{Name: "first"}, time.Hour))
		require.NoError(t, Set(store, "k", testPayload{Name: "second"}, time.Hour))

		got, ok := Get[testPayload](store, "k")
		require.True(t, ok)
		assert.Equal(t, "second", got.Name)
	})
}

func TestStore_Expiry(t *testing.T) {
	t.Run("zero ttl entry expires as soon as time passes", func(t *testing.T) {
		store := setupStore(t)

		now := time.Now()
		store.now = func() time.Time { return now }
		require.NoError(t, store.Set("k", []byte(`{"a":1}`), time.Millisecond))

		// ttl stored as 1ms; any later read misses
		store.now = func() time.Time { return now.Add(2 * time.Millisecond) }
		_, ok := store.Get("k")
		assert.False(t, ok)
	})

	t.Run("entry valid within ttl", func(t *testing.T) {
		store := setupStore(t)

		now := time.Now()
		store.now = func() time.Time { return now }
		require.NoError(t, store.Set("k", []byte(`{"a":1}`), time.Minute))

		store.now = func() time.Time { return now.Add(59 * time.Second) }
		payload, ok := store.Get("k")
		require.True(t, ok)
		assert.JSONEq(t, `{"a":1}`, string(payload))
	})

	t.Run("expired entry survives for stale reads", func(t *testing.T) {
		store := setupStore(t)

		now := time.Now()
		store.now = func() time.Time { return now }
		require.NoError(t, store.Set("k", []byte(`{"a":1}`), time.Minute))

		store.now = func() time.Time { return now.Add(2 * time.Minute) }
		_, ok := store.Get("k")
		assert.False(t, ok)

		// The row stays on disk so degraded responses can still use it.
		_, ok = store.GetStale("k")
		assert.True(t, ok)
	})

	t.Run("stale read bypasses expiry", func(t *testing.T) {
		store := setupStore(t)

		now := time.Now()
		store.now = func() time.Time { return now }
		require.NoError(t, store.Set("k", []byte(`{"a":1}`), time.Minute))

		store.now = func() time.Time { return now.Add(2 * time.Minute) }
		payload, ok := store.GetStale("k")
		require.True(t, ok)
		assert.JSONEq(t, `{"a":1}`, string(payload))
	})
}

func TestStore_Corruption(t *testing.T) {
	t.Run("unparseable payload treated as miss", func(t *testing.T) {
		store := setupStore(t)

		record := entryRecord{
			Key:       prefixed("bad"),
			Payload:   "{not json",
			Timestamp: time.Now().UnixMilli(),
			TTL:       time.Hour.Milliseconds(),
		}
		require.NoError(t, store.db.Create(&record).Error)

		_, ok := store.Get("bad")
		assert.False(t, ok)

		// Corrupt row was discarded.
		var count int64
		store.db.Model(&entryRecord{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("shape mismatch treated as miss", func(t *testing.T) {
		store := setupStore(t)

		require.NoError(t, store.Set("k", []byte(`["unexpected","array"]`), time.Hour))

		_, ok := Get[testPayload](store, "k")
		assert.False(t, ok)
	})
}

func TestStore_Clear(t *testing.T) {
	store := setupStore(t)

	require.NoError(t, Set(store, "a", testPayload{Name: "a"}, time.Hour))
	require.NoError(t, Set(store, "b", testPayload{Name: "b"}, time.Hour))

	// A row outside the namespace survives the sweep.
	other := entryRecord{Key: "other_key", Payload: "{}", Timestamp: time.Now().UnixMilli(), TTL: 1000}
	require.NoError(t, store.db.Create(&other).Error)

	require.NoError(t, store.Clear())

	_, ok := Get[testPayload](store, "a")
	assert.False(t, ok)
	_, ok = Get[testPayload](store, "b")
	assert.False(t, ok)

	var count int64
	store.db.Model(&entryRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStore_GetInfo(t *testing.T) {
	store := setupStore(t)

	require.NoError(t, Set(store, "a", testPayload{Name: "a"}, time.Hour))
	require.NoError(t, Set(store, "b", testPayload{Name: "b"}, time.Hour))

	info, err := store.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 2, info.TotalKeys)
	assert.Greater(t, info.TotalSize, 0)
	assert.ElementsMatch(t, []string{"a", "b"}, info.Keys)
}

func TestStore_DefaultTTL(t *testing.T) {
	t.Run("negative ttl falls back to the default", func(t *testing.T) {
		store := setupStore(t)

		require.NoError(t, store.Set("k", []byte(`{}`), -1))

		var record entryRecord
		require.NoError(t, store.db.First(&record, "key = ?", prefixed("k")).Error)
		assert.Equal(t, (15 * time.Minute).Milliseconds(), record.TTL)
	})

	t.Run("explicit zero ttl expires immediately", func(t *testing.T) {
		store := setupStore(t)

		now := time.Now()
		store.now = func() time.Time { return now }
		require.NoError(t, store.Set("k", []byte(`{}`), 0))

		store.now = func() time.Time { return now.Add(time.Millisecond) }
		_, ok := store.Get("k")
		assert.False(t, ok)
	})
}

// Package cache provides the dashboard's key-value cache store: flat
// key to JSON payload entries with per-entry TTL, backed by gorm.
package cache

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyPrefix namespaces every dashboard cache entry so the whole
// namespace can be cleared in one sweep.
const KeyPrefix = "dashboard_cache_"

// entryRecord is the persisted shape of a cache entry.
// An entry is valid iff now - timestamp <= ttl. Expired entries read as
// absent but are kept for stale reads; corrupt entries are deleted on
// the next read.
type entryRecord struct {
	Key       string `gorm:"primaryKey;column:key"`
	Payload   string `gorm:"column:payload;not null"`
	Timestamp int64  `gorm:"column:timestamp_ms;not null"`
	TTL       int64  `gorm:"column:ttl_ms;not null"`
}

// TableName returns the cache table name.
func (entryRecord) TableName() string {
	return "cache_entries"
}

// Store is a process-local key-value cache. Concurrent fetches for the
// same key are not deduplicated: each result is idempotent and the last
// write wins.
type Store struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	defaultTTL time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewStore creates a new cache store instance.
func NewStore(db *gorm.DB, defaultTTL time.Duration, logger *zap.SugaredLogger) *Store {
	return &Store{
		db:         db,
		logger:     logger,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// DefaultTTL returns the TTL applied when Set is called with a
// negative ttl.
func (s *Store) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Get returns the payload for key if a valid (non-expired) entry
// exists. Expired entries read as misses but stay on disk for GetStale;
// corrupt entries are deleted and reported as misses.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	record, ok := s.load(key)
	if !ok {
		return nil, false
	}

	// Expired entries are misses but stay on disk: GetStale still needs
	// them for degraded responses. They get overwritten on the next Set.
	elapsed := s.now().UnixMilli() - record.Timestamp
	if elapsed > record.TTL {
		return nil, false
	}

	return json.RawMessage(record.Payload), true
}

// GetStale returns the payload for key regardless of expiry. The
// orchestrator uses it to serve degraded responses after exhausted
// retries.
func (s *Store) GetStale(key string) (json.RawMessage, bool) {
	record, ok := s.load(key)
	if !ok {
		return nil, false
	}
	return json.RawMessage(record.Payload), true
}

// Set writes payload under key. A negative ttl means none was given
// and falls back to the store's default; an explicit zero is honored,
// expiring the entry as soon as any time passes.
func (s *Store) Set(key string, payload json.RawMessage, ttl time.Duration) error {
	if ttl < 0 {
		ttl = s.defaultTTL
	}

	record := entryRecord{
		Key:       prefixed(key),
		Payload:   string(payload),
		Timestamp: s.now().UnixMilli(),
		TTL:       ttl.Milliseconds(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		s.logger.Errorw("cache set failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete removes a single entry.
func (s *Store) Delete(key string) error {
	return s.db.Delete(&entryRecord{}, "key = ?", prefixed(key)).Error
}

// Clear removes every entry in the dashboard cache namespace.
func (s *Store) Clear() error {
	return s.db.Delete(&entryRecord{}, "key LIKE ?", KeyPrefix+"%").Error
}

// Info describes the current cache contents.
type Info struct {
	TotalKeys int      `json:"total_keys"`
	TotalSize int      `json:"total_size"`
	Keys      []string `json:"keys"`
}

// GetInfo lists the namespaced entries and their aggregate payload size.
func (s *Store) GetInfo() (Info, error) {
	var records []entryRecord
	err := s.db.Where("key LIKE ?", KeyPrefix+"%").Find(&records).Error
	if err != nil {
		return Info{}, err
	}

	info := Info{Keys: make([]string, 0, len(records))}
	for _, r := range records {
		info.TotalKeys++
		info.TotalSize += len(r.Payload)
		info.Keys = append(info.Keys, r.Key[len(KeyPrefix):])
	}
	return info, nil
}

// load fetches the raw record, validating that the stored payload is
// parseable JSON. Corruption is never fatal: it is logged and the row
// discarded as a miss.
func (s *Store) load(key string) (entryRecord, bool) {
	var record entryRecord
	err := s.db.First(&record, "key = ?", prefixed(key)).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Errorw("cache get failed", "key", key, "error", err)
		}
		return entryRecord{}, false
	}

	if !json.Valid([]byte(record.Payload)) {
		s.logger.Warnw("corrupt cache entry discarded", "key", key)
		s.evict(key)
		return entryRecord{}, false
	}

	return record, true
}

// evict removes an entry, logging failures instead of surfacing them.
func (s *Store) evict(key string) {
	if err := s.Delete(key); err != nil {
		s.logger.Warnw("cache evict failed", "key", key, "error", err)
	}
}

func prefixed(key string) string {
	return KeyPrefix + key
}

// Get reads and decodes a typed value from the store. A decode failure
// counts as a corrupt entry: logged, evicted and reported as a miss.
func Get[T any](s *Store, key string) (T, bool) {
	var value T

	payload, ok := s.Get(key)
	if !ok {
		return value, false
	}

	if err := json.Unmarshal(payload, &value); err != nil {
		s.logger.Warnw("corrupt cache entry discarded", "key", key, "error", err)
		s.evict(key)
		var zero T
		return zero, false
	}
	return value, true
}

// GetStale reads and decodes a typed value ignoring expiry.
func GetStale[T any](s *Store, key string) (T, bool) {
	var value T

	payload, ok := s.GetStale(key)
	if !ok {
		return value, false
	}

	if err := json.Unmarshal(payload, &value); err != nil {
		s.logger.Warnw("corrupt cache entry discarded", "key", key, "error", err)
		s.evict(key)
		var zero T
		return zero, false
	}
	return value, true
}

// Set encodes and writes a typed value under key.
func Set[T any](s *Store, key string, value T, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(key, payload, ttl)
}

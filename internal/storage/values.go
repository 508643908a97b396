package storage

import (
	"encoding/json"
	"strconv"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// SpeedNav mirrors the JSON record the browser build persists under
// speedNavigation: {"pages": n, "startTime": ms}.
type SpeedNav struct {
	Pages     int   `json:"pages"`
	StartTime int64 `json:"startTime"`
}

// KV wraps a Store with the encodings the persisted contract uses:
// JSON arrays for sets, the literal string "true" for boolean markers,
// and string-encoded millisecond timestamps. Reads degrade to zero
// values; failed writes are logged and skipped.
type KV struct {
	store  Store
	logger *zap.Logger
}

func NewKV(store Store, logger *zap.Logger) *KV {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KV{store: store, logger: logger}
}

// Raw exposes the underlying Store.
func (k *KV) Raw() Store {
	return k.store
}

func (k *KV) String(key string) (string, bool) {
	return k.store.Get(key)
}

func (k *KV) SetString(key string, value string) {
	if err := k.store.Set(key, value); err != nil {
		k.logger.Warn("storage write failed", zap.String("key", key), zap.Error(err))
	}
}

// Strings reads a JSON string array. Absent or malformed values read as empty.
func (k *KV) Strings(key string) []string {
	raw, ok := k.store.Get(key)
	if !ok {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		k.logger.Warn("malformed string set in storage", zap.String("key", key), zap.Error(err))
		return nil
	}
	return values
}

func (k *KV) SetStrings(key string, values []string) {
	data, err := json.Marshal(values)
	if err != nil {
		k.logger.Warn("failed to encode string set", zap.String("key", key), zap.Error(err))
		return
	}
	k.SetString(key, string(data))
}

// AppendString adds value to the deduplicated set at key and reports
// whether the set grew. Sets are append-only; a failed write leaves the
// persisted set untouched and reports false.
func (k *KV) AppendString(key string, value string) bool {
	values := k.Strings(key)
	if lo.Contains(values, value) {
		return false
	}
	data, err := json.Marshal(append(values, value))
	if err != nil {
		k.logger.Warn("failed to encode string set", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := k.store.Set(key, string(data)); err != nil {
		k.logger.Warn("storage write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Bool reports whether the marker at key is set. The browser build stores
// the literal string "true", not a JSON boolean.
func (k *KV) Bool(key string) bool {
	raw, ok := k.store.Get(key)
	return ok && raw == "true"
}

// MarkTrue sets the boolean marker at key.
func (k *KV) MarkTrue(key string) {
	k.SetString(key, "true")
}

// Millis reads a string-encoded millisecond timestamp.
func (k *KV) Millis(key string) (int64, bool) {
	raw, ok := k.store.Get(key)
	if !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		k.logger.Warn("malformed timestamp in storage", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	return ms, true
}

func (k *KV) SetMillis(key string, ms int64) {
	k.SetString(key, strconv.FormatInt(ms, 10))
}

func (k *KV) SpeedNav() SpeedNav {
	raw, ok := k.store.Get(KeySpeedNavigation)
	if !ok {
		return SpeedNav{}
	}
	var nav SpeedNav
	if err := json.Unmarshal([]byte(raw), &nav); err != nil {
		k.logger.Warn("malformed speed navigation record", zap.Error(err))
		return SpeedNav{}
	}
	return nav
}

func (k *KV) SetSpeedNav(nav SpeedNav) {
	data, err := json.Marshal(nav)
	if err != nil {
		k.logger.Warn("failed to encode speed navigation record", zap.Error(err))
		return
	}
	k.SetString(KeySpeedNavigation, string(data))
}

// Reset clears every persisted entry.
func (k *KV) Reset() {
	if err := k.store.Reset(); err != nil {
		k.logger.Warn("storage reset failed", zap.Error(err))
	}
}

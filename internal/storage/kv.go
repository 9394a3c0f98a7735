package storage

import (
	"context"
	"fmt"
	"sync"
)

// KV is a string key-value store. Implementations are safe for concurrent use.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases the store's resources.
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name from the command line.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendSQLite, BackendRedis, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("storage: unknown backend %q (want sqlite, redis or memory)", s)
	}
}

// OpenKV returns the key-value store for backend. The sqlite backend shares
// store, which stays owned by the caller; closing the returned KV leaves it open.
func OpenKV(ctx context.Context, backend Backend, store *Store, redisAddr string) (KV, error) {
	switch backend {
	case BackendSQLite:
		if store == nil {
			return nil, fmt.Errorf("storage: sqlite backend needs an open store")
		}
		return sharedStore{store}, nil
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{Addr: redisAddr})
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}

// sharedStore exposes a Store as a KV without handing over its lifetime.
type sharedStore struct {
	*Store
}

func (sharedStore) Close() error { return nil }

// MemoryKV keeps values in process memory. Nothing survives a restart.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Close() error { return nil }

var (
	_ KV = (*MemoryKV)(nil)
	_ KV = (*Store)(nil)
	_ KV = (*RedisKV)(nil)
	_ KV = sharedStore{}
)

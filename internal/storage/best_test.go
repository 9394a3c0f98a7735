package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV returns err from every operation.
type failingKV struct {
	err error
}

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error { return f.err }
func (f failingKV) Close() error { return nil }

func TestBestScoresAbsent(t *testing.T) {
	b := NewBestScores(NewMemoryKV(), nil)

	score, ok := b.BestScore()
	assert.False(t, ok)
	assert.Zero(t, score)
}

func TestBestScoresRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	b := NewBestScores(kv, nil)

	require.NoError(t, b.SetBestScore(5))
	require.NoError(t, b.SetBestScore(7))

	reloaded := NewBestScores(kv, nil)
	score, ok := reloaded.BestScore()
	assert.True(t, ok)
	assert.Equal(t, 7, score)

	raw, _, _ := kv.Get(context.Background(), BestScoreKey)
	assert.Equal(t, "7", raw, "stored as a decimal string")
}

func TestBestScoresSQLiteReload(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "best.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, NewBestScores(sharedStore{store}, nil).SetBestScore(7))
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	score, ok := NewBestScores(store, nil).BestScore()
	assert.True(t, ok)
	assert.Equal(t, 7, score)
}

func TestBestScoresMalformed(t *testing.T) {
	for _, raw := range []string{"", "abc", "7.5", "-3", "12abc"} {
		t.Run(raw, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(context.Background(), BestScoreKey, raw))

			score, ok := NewBestScores(kv, nil).BestScore()
			assert.False(t, ok)
			assert.Zero(t, score)
		})
	}
}

func TestBestScoresStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	b := NewBestScores(failingKV{err: boom}, nil)

	score, ok := b.BestScore()
	assert.False(t, ok, "read failures count as absent")
	assert.Zero(t, score)

	assert.ErrorIs(t, b.SetBestScore(3), boom)
}

func TestMemoryKVConcurrent(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				kv.Set(ctx, "k", "v")
				kv.Get(ctx, "k")
			}
		}()
	}
	wg.Wait()

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"sqlite", "redis", "memory"} {
		b, err := ParseBackend(name)
		require.NoError(t, err)
		assert.Equal(t, Backend(name), b)
	}

	_, err := ParseBackend("postgres")
	assert.Error(t, err)
}

func TestOpenKVSharesSQLiteStore(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	kv, err := OpenKV(ctx, BackendSQLite, store, "")
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", "v"))
	require.NoError(t, kv.Close())

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err, "store must stay open after the shared KV is closed")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, err = OpenKV(ctx, BackendSQLite, nil, "")
	assert.Error(t, err)
}

// TestRedisKV runs against a live server when BATFLAP_REDIS_ADDR is set.
func TestRedisKV(t *testing.T) {
	addr := os.Getenv("BATFLAP_REDIS_ADDR")
	if addr == "" {
		t.Skip("BATFLAP_REDIS_ADDR not set")
	}
	ctx := context.Background()

	kv, err := OpenRedis(ctx, RedisOptions{Addr: addr, DB: 15})
	require.NoError(t, err)
	defer kv.Close()

	key := "batflap-test-" + t.Name()
	_, ok, err := kv.Get(ctx, key+"-missing")
	require.NoError(t, err)
	assert.False(t, ok)

	b := NewBestScores(kv, nil)
	b.key = key
	require.NoError(t, b.SetBestScore(11))

	score, ok := b.BestScore()
	assert.True(t, ok)
	assert.Equal(t, 11, score)
}

func TestBestScoresSeedFromHistory(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer store.Close()

	for _, score := range []int{4, 11, 6} {
		_, err := store.SaveScore("batflap", score)
		require.NoError(t, err)
	}

	b := NewBestScores(NewMemoryKV(), nil)
	assert.Equal(t, 11, b.Seed(store, "batflap"))

	score, ok := b.BestScore()
	assert.True(t, ok)
	assert.Equal(t, 11, score)
}

func TestBestScoresSeedKeepsStoredBest(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SaveScore("batflap", 30)
	require.NoError(t, err)

	b := NewBestScores(NewMemoryKV(), nil)
	require.NoError(t, b.SetBestScore(12))
	assert.Equal(t, 12, b.Seed(store, "batflap"), "a stored best is never replaced")

	empty := NewBestScores(NewMemoryKV(), nil)
	assert.Zero(t, empty.Seed(nil, "batflap"))
	_, ok := empty.BestScore()
	assert.False(t, ok)
}

func TestBestScoresSeedEmptyHistory(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer store.Close()

	b := NewBestScores(NewMemoryKV(), nil)
	assert.Zero(t, b.Seed(store, "batflap"))
	_, ok := b.BestScore()
	assert.False(t, ok, "nothing is written for an empty history")
}

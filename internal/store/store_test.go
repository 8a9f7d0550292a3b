package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the behaviour every backend must share.
func exerciseKV(t *testing.T, kv KV, key string) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, key, []byte(`[{"plate":"ABC1D23"}]`)))
	got, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"plate":"ABC1D23"}]`, string(got))

	require.NoError(t, kv.Put(ctx, key, []byte(`[]`)))
	got, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseKV(t, s, "garage")
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'y'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "garage.db")

	s, err := NewSQLite(dbPath)
	require.NoError(t, err)
	exerciseKV(t, s, "garage")
	require.NoError(t, s.Close())

	// Reopening sees the persisted slot.
	s, err = NewSQLite(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(context.Background(), "garage")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	s, err := NewRedis(context.Background(), url, "garage-planner-test:")
	require.NoError(t, err)
	defer s.Close()

	exerciseKV(t, s, uuid.NewString())
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not a url", "")
	assert.Error(t, err)
}

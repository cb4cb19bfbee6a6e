package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/armonia-app/armonia-core/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, err := mem.Get(ctx, KeyAccounts)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mem.Set(ctx, KeyAccounts, `[{"id":"1"}]`))
	value, err := mem.Get(ctx, KeyAccounts)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, value)

	require.NoError(t, mem.Remove(ctx, KeyAccounts))
	_, err = mem.Get(ctx, KeyAccounts)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFailureInjection(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	boom := errors.New("quota exceeded")
	mem.FailSet = boom

	err := mem.Set(ctx, KeySession, "{}")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mem.Len())
}

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFile(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get(ctx, KeySession)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, fs.Set(ctx, KeySession, `{"id":"abc"}`))
	value, err := fs.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"abc"}`, value)

	// Overwrite must fully replace the previous document.
	require.NoError(t, fs.Set(ctx, KeySession, `{}`))
	value, err = fs.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.Equal(t, `{}`, value)

	require.NoError(t, fs.Remove(ctx, KeySession))
	require.NoError(t, fs.Remove(ctx, KeySession)) // absent key is fine
	_, err = fs.Get(ctx, KeySession)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilePathSanitization(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set(context.Background(), "../escape", "x"))
	value, err := fs.Get(context.Background(), "../escape")
	require.NoError(t, err)
	assert.Equal(t, "x", value)

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1, "document must live inside the storage dir")
}

func TestRedisOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:secret@localhost:6379/2",
		PoolSize:    10,
		DialTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 10, opts.PoolSize)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "redis:6380", DB: 1})
	require.NoError(t, err)
	assert.Equal(t, "redis:6380", opts.Addr)
	assert.Equal(t, 1, opts.DB)
}

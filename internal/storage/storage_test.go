package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SecureStorage {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return New(nil, Config{Key: key, KeyPrefix: "cg:", Adapter: NewMemoryAdapter()})
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.Nil(t, s.Set(ctx, "alpha", []byte("secret value"), nil))

	val, ok, cerr := s.Get(ctx, "alpha")
	require.Nil(t, cerr)
	require.True(t, ok)
	assert.Equal(t, "secret value", string(val))
}

func TestGetAbsentKeyReturnsFalseNotError(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	val, ok, cerr := s.Get(ctx, "missing")
	require.Nil(t, cerr)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestExpiredEntryIsInvisibleOnRead(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	ttl := time.Millisecond

	require.Nil(t, s.Set(ctx, "alpha", []byte("value"), &ttl))
	time.Sleep(5 * time.Millisecond)

	_, ok, cerr := s.Get(ctx, "alpha")
	require.Nil(t, cerr)
	assert.False(t, ok)
}

func TestDeleteRemovesEntry(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.Nil(t, s.Set(ctx, "alpha", []byte("value"), nil))
	require.Nil(t, s.Delete(ctx, "alpha"))

	_, ok, cerr := s.Get(ctx, "alpha")
	require.Nil(t, cerr)
	assert.False(t, ok)
}

func TestKeysListsOnlyLiveEntriesUnderPrefix(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	ttl := time.Millisecond

	require.Nil(t, s.Set(ctx, "alpha", []byte("value"), nil))
	require.Nil(t, s.Set(ctx, "beta", []byte("value"), &ttl))
	time.Sleep(5 * time.Millisecond)

	keys, cerr := s.Keys(ctx)
	require.Nil(t, cerr)
	assert.Equal(t, []string{"alpha"}, keys)
}

func TestClearRemovesEverythingInNamespace(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.Nil(t, s.Set(ctx, "alpha", []byte("value"), nil))
	require.Nil(t, s.Set(ctx, "beta", []byte("value"), nil))
	require.Nil(t, s.Clear(ctx))

	keys, cerr := s.Keys(ctx)
	require.Nil(t, cerr)
	assert.Empty(t, keys)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUSetGet(t *testing.T) {
	l := NewLRU(2, nil)
	l.Set("a", []byte("1"), 0)
	item, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), item.Value)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	l := NewLRU(2, func(key string, item *Item) { evicted = append(evicted, key) })

	l.Set("a", []byte("1"), 0)
	l.Set("b", []byte("2"), 0)
	l.Get("a") // a is now most-recently-used
	l.Set("c", []byte("3"), 0) // evicts b

	assert.Equal(t, []string{"b"}, evicted)
	_, ok := l.Get("b")
	assert.False(t, ok)
}

func TestLRUTTLExpiryIsLazy(t *testing.T) {
	l := NewLRU(2, nil)
	l.Set("a", []byte("1"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := l.Get("a")
	assert.False(t, ok)
}

func TestLRUSweepPurgesExpired(t *testing.T) {
	l := NewLRU(5, nil)
	l.Set("a", []byte("1"), time.Millisecond)
	l.Set("b", []byte("2"), 0)
	time.Sleep(5 * time.Millisecond)

	removed := l.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, l.Len())
}

type memoryPersistent struct {
	store map[string][]byte
}

func newMemoryPersistent() *memoryPersistent {
	return &memoryPersistent{store: make(map[string][]byte)}
}

func (m *memoryPersistent) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store[key]
	return v, ok, nil
}
func (m *memoryPersistent) Set(ctx context.Context, key string, value []byte) error {
	m.store[key] = value
	return nil
}
func (m *memoryPersistent) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}
func (m *memoryPersistent) Clear(ctx context.Context) error {
	m.store = make(map[string][]byte)
	return nil
}

func TestAdaptiveGetSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdaptive(AdaptiveConfig{MinSize: 2, MaxSize: 10, InitialSize: 4}, newMemoryPersistent(), nil)

	require.NoError(t, a.Set(ctx, "k", []byte("v")))
	val, ok, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestAdaptivePromotesL2HitToL1(t *testing.T) {
	ctx := context.Background()
	l2 := newMemoryPersistent()
	l2.store["k"] = []byte("from-l2")

	a := NewAdaptive(AdaptiveConfig{MinSize: 2, MaxSize: 10, InitialSize: 4}, l2, nil)
	val, ok, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("from-l2"), val)

	item, ok := a.l1.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("from-l2"), item.Value)
}

func TestAdaptiveResizeAppliesRequestedSizeUnclamped(t *testing.T) {
	a := NewAdaptive(AdaptiveConfig{MinSize: 2, MaxSize: 8, InitialSize: 4}, NoOpPersistent{}, nil)
	a.resize(20)
	assert.LessOrEqual(t, a.currentSizeSnapshot(), 20) // resize itself doesn't clamp; tick() does
	a.resize(4)
	assert.Equal(t, 4, a.currentSizeSnapshot())
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, m.Set("k", []byte("v"), 0))
		v, ok, err := m.Get("k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), v)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok, err := m.Get("absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, m.Delete("k"))
		_, ok, _ := m.Get("k")
		assert.False(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, m.Set("ttl", []byte("x"), 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)
		_, ok, _ := m.Get("ttl")
		assert.False(t, ok)
	})

	t.Run("flush", func(t *testing.T) {
		require.NoError(t, m.Set("a", []byte("1"), 0))
		require.NoError(t, m.Flush())
		_, ok, _ := m.Get("a")
		assert.False(t, ok)
	})
}

func TestDiskCache(t *testing.T) {
	d, err := NewDisk(t.TempDir(), time.Minute)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, d.Set("some key / with ? odd chars", []byte("payload"), 0))
		v, ok, err := d.Get("some key / with ? odd chars")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("payload"), v)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok, err := d.Get("absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, d.Set("gone", []byte("x"), 0))
		require.NoError(t, d.Delete("gone"))
		_, ok, _ := d.Get("gone")
		assert.False(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		short, err := NewDisk(t.TempDir(), 10*time.Millisecond)
		require.NoError(t, err)
		require.NoError(t, short.Set("k", []byte("v"), 0))
		time.Sleep(30 * time.Millisecond)
		_, ok, err := short.Get("k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("purge sweeps expired entries", func(t *testing.T) {
		short, err := NewDisk(t.TempDir(), 10*time.Millisecond)
		require.NoError(t, err)
		require.NoError(t, short.Set("k", []byte("v"), 0))
		time.Sleep(30 * time.Millisecond)
		require.NoError(t, short.Purge())
		_, ok, _ := short.Get("k")
		assert.False(t, ok)
	})

	t.Run("flush", func(t *testing.T) {
		require.NoError(t, d.Set("a", []byte("1"), 0))
		require.NoError(t, d.Flush())
		_, ok, _ := d.Get("a")
		assert.False(t, ok)
	})

	t.Run("requires directory", func(t *testing.T) {
		_, err := NewDisk("", time.Minute)
		assert.Error(t, err)
	})
}

package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisk_EmptyPath(t *testing.T) {
	_, err := NewDisk("")
	assert.Error(t, err)
}

func TestNewDisk_CreatesBasePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "state")
	_, err := NewDisk(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	_, err = NewDisk(file)
	assert.Error(t, err, "base path is a regular file")
}

func TestDisk_SetGetRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	d, err := NewDisk(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, d.BasePath())

	_, found, err := d.Get("prodBarTheme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, d.Set("prodBarTheme", `"light"`))
	v, found, err := d.Get("prodBarTheme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"light"`, v)

	onDisk, err := os.ReadFile(filepath.Join(dir, "prodBarTheme"))
	require.NoError(t, err)
	assert.Equal(t, `"light"`, string(onDisk))

	require.NoError(t, d.Remove("prodBarTheme"))
	require.NoError(t, d.Remove("prodBarTheme"))
	_, found, err = d.Get("prodBarTheme")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDisk_SharedBetweenInstances(t *testing.T) {
	dir := t.TempDir()
	a, err := NewDisk(dir)
	require.NoError(t, err)
	b, err := NewDisk(dir)
	require.NoError(t, err)

	require.NoError(t, a.Set("k", "one"))
	v, _, err := b.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "one", v)

	require.NoError(t, b.Set("k", "two"))
	v, _, err = a.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "two", v, "last writer wins")
}

func TestDisk_Watch(t *testing.T) {
	dir := t.TempDir()
	watched, err := NewDisk(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys, err := watched.Watch(ctx, nil)
	require.NoError(t, err)

	other, err := NewDisk(dir)
	require.NoError(t, err)
	require.NoError(t, other.Set("prodBarSelectedQueues", `["VIP"]`))

	select {
	case key := <-keys:
		assert.Equal(t, "prodBarSelectedQueues", key)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	for range keys {
	}
}

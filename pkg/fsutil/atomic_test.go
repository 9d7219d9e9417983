package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerealean/wabbc/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("[b]x[/b]"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[b]x[/b]", string(got))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("applies mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0o600))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "notes.bbcode")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		assert.FileExists(t, path)
	})

	t.Run("cancelled context writes nothing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "a.bbcode"), []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			assert.NotContains(t, entry.Name(), ".tmp")
		}
		assert.Len(t, entries, 1)
	})

	t.Run("fails when target is a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "taken")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "child"), []byte("x"), 0o644))

		require.Error(t, fsutil.WriteAtomic(context.Background(), target, []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			assert.False(t, strings.Contains(entry.Name(), ".tmp"), "temp file left behind: %s", entry.Name())
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	t.Run("writes missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("x"), 0)
		require.NoError(t, err)
		assert.True(t, written)
	})

	t.Run("skips identical content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		require.NoError(t, os.WriteFile(path, []byte("same"), 0o644))

		written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("same"), 0)
		require.NoError(t, err)
		assert.False(t, written)
	})

	t.Run("rewrites changed content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.bbcode")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("new"), 0)
		require.NoError(t, err)
		assert.True(t, written)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})
}

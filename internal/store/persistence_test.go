package store

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFileKV_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	defer kv.Close()

	_, ok := kv.Get("theme")
	assert.False(t, ok)
	assert.True(t, kv.UpdatedAt().IsZero())

	// Nothing is created until the first write.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenFileKV_EmptyPath(t *testing.T) {
	_, err := OpenFileKV("")
	assert.Error(t, err)
}

func TestFileKV_SetPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("git-patch-viewer-theme", "nord"))
	require.NoError(t, kv.Set("git-patch-viewer-mode", "light"))
	assert.False(t, kv.UpdatedAt().IsZero())
	require.NoError(t, kv.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"schema_version": 1`)
	assert.Contains(t, string(content), `"git-patch-viewer-theme": "nord"`)

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reopened, err := OpenFileKV(path)
	require.NoError(t, err)
	v, ok := reopened.Get("git-patch-viewer-mode")
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	assert.Equal(t, kv.UpdatedAt().Unix(), reopened.UpdatedAt().Unix())
}

func TestFileKV_CorruptedFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	kv, err := OpenFileKV(path)
	require.NoError(t, err)

	_, ok := kv.Get("theme")
	assert.False(t, ok)

	// A write replaces the corrupted document.
	require.NoError(t, kv.Set("theme", "zinc"))
	reopened, err := OpenFileKV(path)
	require.NoError(t, err)
	v, _ := reopened.Get("theme")
	assert.Equal(t, "zinc", v)
}

func TestFileKV_SetAfterClose(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)
	require.NoError(t, kv.Close())
	require.NoError(t, kv.Close())

	assert.ErrorIs(t, kv.Set("theme", "nord"), ErrStoreClosed)
}

func TestFileKV_SubscribeLocalChange(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)
	defer kv.Close()

	ch := kv.Subscribe()
	require.NoError(t, kv.Set("theme", "nord"))

	select {
	case ev := <-ch:
		assert.Equal(t, ChangeSourceLocal, ev.Source)
		assert.Equal(t, []string{"theme"}, ev.Keys)
	case <-time.After(time.Second):
		t.Fatal("expected change event")
	}
}

func TestFileKV_ReloadDetectsExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	a, err := OpenFileKV(path)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.Set("theme", "nord"))

	b, err := OpenFileKV(path)
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, b.Set("theme", "dracula"))
	require.NoError(t, b.Set("mode", "light"))

	ch := a.Subscribe()
	changed, err := a.Reload()
	require.NoError(t, err)
	assert.True(t, changed)

	v, _ := a.Get("theme")
	assert.Equal(t, "dracula", v)

	ev := <-ch
	assert.Equal(t, ChangeSourceExternal, ev.Source)
	assert.Equal(t, []string{"mode", "theme"}, ev.Keys)

	// A second reload with nothing new is quiet.
	changed, err = a.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFileKV_ReloadDuringLocalWrites(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)
	defer kv.Close()

	events := kv.Subscribe()
	keys := DefaultKeys()

	done := make(chan struct{})
	reloaded := make(chan int)
	go func() {
		n := 0
		for {
			select {
			case <-done:
				reloaded <- n
				return
			default:
			}
			if changed, err := kv.Reload(); err == nil && changed {
				n++
			}
		}
	}()

	for i := range 500 {
		v := strconv.Itoa(i)
		require.NoError(t, kv.Set(keys.Theme, v))
		require.NoError(t, kv.Set(keys.Mode, v))

		got, _ := kv.Get(keys.Mode)
		require.Equal(t, v, got, "own write rolled back")
	}
	close(done)
	assert.Zero(t, <-reloaded, "reload found changes nobody else made")

	// Drain: every event is ours.
	for {
		select {
		case ev := <-events:
			assert.Equal(t, ChangeSourceLocal, ev.Source)
		default:
			return
		}
	}
}

func TestFileKV_SubscribeAfterCloseIsClosed(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)

	live := kv.Subscribe()
	require.NoError(t, kv.Close())

	_, ok := <-live
	assert.False(t, ok)

	_, ok = <-kv.Subscribe()
	assert.False(t, ok)
}

func TestDiffKeys(t *testing.T) {
	a := map[string]string{"x": "1", "y": "2"}
	b := map[string]string{"y": "3", "z": "4"}
	assert.Equal(t, []string{"x", "y", "z"}, diffKeys(a, b))
	assert.Empty(t, diffKeys(a, a))
}

package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	local, err := OpenFileKV(path)
	require.NoError(t, err)
	defer local.Close()
	require.NoError(t, local.Set("theme", "nord"))

	fw, err := NewFileWatcher(local, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Start())
	defer fw.Stop()

	ch := local.Subscribe()

	other, err := OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, other.Set("theme", "gruvbox"))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Source != ChangeSourceExternal {
				continue
			}
			v, _ := local.Get("theme")
			assert.Equal(t, "gruvbox", v)
			return
		case <-deadline:
			t.Fatal("watcher did not pick up external write")
		}
	}
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)

	fw, err := NewFileWatcher(kv, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())

	assert.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}

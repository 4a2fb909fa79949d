package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/patchview/internal/theme"
)

func TestMemoryKV(t *testing.T) {
	var kv MemoryKV

	_, ok := kv.Get("missing")
	assert.False(t, ok)

	require.NoError(t, kv.Set("a", "1"))
	v, ok := kv.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, kv.Writes())
	assert.Equal(t, map[string]string{"a": "1"}, kv.Snapshot())
}

func TestNewKeys(t *testing.T) {
	assert.Equal(t, Keys{Theme: "git-patch-viewer-theme", Mode: "git-patch-viewer-mode"}, DefaultKeys())
	assert.Equal(t, Keys{Theme: "theme", Mode: "mode"}, NewKeys(""))
}

func TestLoad(t *testing.T) {
	catalog := theme.Default()
	keys := DefaultKeys()
	defaults := DefaultPreference(catalog)

	tests := []struct {
		name     string
		values   map[string]string
		expected Preference
	}{
		{
			name:     "empty_store_uses_defaults",
			values:   nil,
			expected: Preference{Theme: "cosmic-night", Mode: theme.ModeDark},
		},
		{
			name:     "valid_values",
			values:   map[string]string{keys.Theme: "nord", keys.Mode: "light"},
			expected: Preference{Theme: "nord", Mode: theme.ModeLight},
		},
		{
			name:     "unknown_theme_falls_back",
			values:   map[string]string{keys.Theme: "vaporwave", keys.Mode: "light"},
			expected: Preference{Theme: "cosmic-night", Mode: theme.ModeLight},
		},
		{
			name:     "unknown_mode_falls_back",
			values:   map[string]string{keys.Theme: "nord", keys.Mode: "sepia"},
			expected: Preference{Theme: "nord", Mode: theme.ModeDark},
		},
		{
			name:     "empty_strings_fall_back",
			values:   map[string]string{keys.Theme: "", keys.Mode: ""},
			expected: Preference{Theme: "cosmic-night", Mode: theme.ModeDark},
		},
		{
			name:     "mode_is_case_sensitive",
			values:   map[string]string{keys.Mode: "LIGHT"},
			expected: Preference{Theme: "cosmic-night", Mode: theme.ModeDark},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV(tt.values)
			assert.Equal(t, tt.expected, Load(kv, keys, catalog, defaults))
		})
	}
}

func TestSave(t *testing.T) {
	kv := NewMemoryKV(nil)
	keys := NewKeys("")

	require.NoError(t, Save(kv, keys, Preference{Theme: "dracula", Mode: theme.ModeLight}))
	assert.Equal(t, map[string]string{"theme": "dracula", "mode": "light"}, kv.Snapshot())
}

type failingKV struct {
	MemoryKV
	failKey string
}

var errDiskFull = errors.New("disk full")

func (f *failingKV) Set(key, value string) error {
	if key == f.failKey {
		return errDiskFull
	}
	return f.MemoryKV.Set(key, value)
}

func TestSave_AttemptsBothWrites(t *testing.T) {
	kv := &failingKV{failKey: "theme"}

	err := Save(kv, NewKeys(""), Preference{Theme: "nord", Mode: theme.ModeLight})
	require.ErrorIs(t, err, errDiskFull)

	v, ok := kv.Get("mode")
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

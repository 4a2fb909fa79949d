package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Shortcut(t *testing.T) {
	assert.Equal(t, []string{"t"}, DefaultKeyMap("").Picker.Keys())
	assert.Equal(t, []string{"p"}, DefaultKeyMap("p").Picker.Keys())
	assert.Equal(t, "p", DefaultKeyMap("p").Picker.Help().Key)
}

func TestKeyMap_Help(t *testing.T) {
	k := DefaultKeyMap("")
	assert.Len(t, k.ShortHelp(), 5)
	assert.Len(t, k.FullHelp(), 3)
	assert.Len(t, k.PickerHelp(), 4)
}

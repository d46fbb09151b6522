package textmate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColourCanonicalizes(t *testing.T) {
	assert.Equal(t, Colour(""), ParseColour(""))
	assert.Equal(t, Colour(""), ParseColour("   "))
	assert.Equal(t, Colour("#112233"), ParseColour("#123"))
	assert.Equal(t, Colour("#FFAA00"), ParseColour("#ffaa00"))
	assert.Equal(t, Colour("#FFAA00"), ParseColour("#FFAA00"))
}

func TestParseColourPreservesUnparsable(t *testing.T) {
	assert.Equal(t, Colour("editor.background"), ParseColour("editor.background"))
}

func TestColourIsSet(t *testing.T) {
	assert.False(t, Colour("").IsSet())
	assert.True(t, Colour("#000000").IsSet())
}

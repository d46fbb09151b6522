package textmate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorMapInternsInFirstRequestOrder(t *testing.T) {
	m := NewColorMap()
	assert.Equal(t, 0, m.GetID(""))
	assert.Equal(t, 1, m.GetID("#ff0000"))
	assert.Equal(t, 2, m.GetID("#00FF00"))
	assert.Equal(t, 1, m.GetID("#FF0000"), "re-requesting an interned colour returns its existing id")
	assert.Equal(t, []string{"", "#FF0000", "#00FF00"}, m.Colors())
}

func TestColorMapGetColor(t *testing.T) {
	m := NewColorMap()
	id := m.GetID("#abcdef")
	assert.Equal(t, "#ABCDEF", m.GetColor(id))
	assert.Equal(t, "", m.GetColor(0))
	assert.Equal(t, "", m.GetColor(99))
}

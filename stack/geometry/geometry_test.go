package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Bounds(t *testing.T) {
	r := NewRect(0, 250, 500, 250)
	assert.Equal(t, 250, r.MinY())
	assert.Equal(t, 500, r.MaxY())
	assert.True(t, r.ContainsY(250))
	assert.True(t, r.ContainsY(499))
	assert.False(t, r.ContainsY(500), "max y is exclusive")
}

func TestRect_ZeroHeightContainsNothing(t *testing.T) {
	r := NewRect(0, 250, 500, 0)
	assert.False(t, r.ContainsY(250))
}

func TestSize_IsPositive(t *testing.T) {
	assert.True(t, NewSize(500, 1000).IsPositive())
	assert.False(t, NewSize(0, 1000).IsPositive())
	assert.False(t, NewSize(500, -1).IsPositive())
}

func TestRect_String(t *testing.T) {
	assert.Equal(t, "{(0, 780) 500x220}", NewRect(0, 780, 500, 220).String())
}

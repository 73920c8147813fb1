package namegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameIsReproducible(t *testing.T) {
	a, b := New(DefaultSeed), New(DefaultSeed)
	for i := 0; i < 10; i++ {
		name := a.Name()
		assert.Equal(t, name, b.Name())
		assert.NotEmpty(t, strings.TrimSpace(name))
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a, b := New(1), New(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Name() != b.Name() {
			same = false
		}
	}
	assert.False(t, same)
}

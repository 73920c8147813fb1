package normalizer

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/baditaflorin/monegros/internal/ports"
)

// DefaultNormalizer upper-cases text with full Unicode special casing,
// so "ß" becomes "SS" and ligatures expand.
type DefaultNormalizer struct {
	// cases.Caser is stateful and must not be shared between goroutines.
	casers sync.Pool
}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{
		casers: sync.Pool{
			New: func() interface{} {
				c := cases.Upper(language.Und)
				return &c
			},
		},
	}
}

// Normalize converts the input text to upper case.
func (n *DefaultNormalizer) Normalize(text string) string {
	c := n.casers.Get().(*cases.Caser)
	defer n.casers.Put(c)
	return c.String(text)
}

package normalizer

import (
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/monegros/internal/ports"
)

// ComposingNormalizer applies Unicode NFC composition before delegating, so a
// decomposed "N" + combining tilde folds to the same text as a precomposed "Ñ".
type ComposingNormalizer struct {
	next ports.Normalizer
}

// NewComposingNormalizer wraps next with NFC composition.
func NewComposingNormalizer(next ports.Normalizer) ports.Normalizer {
	if next == nil {
		next = NewDefaultNormalizer()
	}
	return &ComposingNormalizer{next: next}
}

// Normalize composes and then folds the text.
func (n *ComposingNormalizer) Normalize(text string) string {
	return n.next.Normalize(norm.NFC.String(text))
}

package normalizer

import (
	"github.com/baditaflorin/monegros/internal/pool"
	"github.com/baditaflorin/monegros/internal/ports"
)

// OptimizedNormalizer upper-cases ASCII text through a lookup table and a pooled
// buffer, and hands anything else to the Unicode-aware default normalizer.
type OptimizedNormalizer struct {
	// Pre-computed upper-case table for ASCII characters (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
	fallback ports.Normalizer
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(256),
		fallback: NewDefaultNormalizer(),
	}
	for i := 0; i < 128; i++ {
		b := byte(i)
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		n.asciiTable[i] = b
	}
	return n
}

// Normalize converts the input text to upper case.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			return n.fallback.Normalize(text)
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	for i := 0; i < len(text); i++ {
		*buffer = append(*buffer, n.asciiTable[text[i]])
	}
	return string(*buffer)
}

// NormalizerFactory creates the appropriate normalizer based on configuration
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a case-folding strategy.
type NormalizerType int

const (
	// DefaultNormalizerType uses Unicode special casing for every input
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType takes a table-driven path for ASCII input
	OptimizedNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type. When compose is
// set the result applies NFC composition first.
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType, compose bool) ports.Normalizer {
	var n ports.Normalizer
	switch normalizerType {
	case OptimizedNormalizerType:
		n = NewOptimizedNormalizer()
	default:
		n = NewDefaultNormalizer()
	}
	if compose {
		n = NewComposingNormalizer(n)
	}
	return n
}

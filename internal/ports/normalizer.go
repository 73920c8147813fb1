package ports

// Normalizer defines the interface for text normalization.
type Normalizer interface {
	Normalize(text string) string
}

// ClubNormalizer maps a raw club cell to its canonical club name.
type ClubNormalizer interface {
	Normalize(raw string) string
	NormalizeValue(v interface{}) string
}

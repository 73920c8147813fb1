// monegros.go
// Package monegros canonicalizes cycling club names from race results.
// Variants such as "C.C. Huesca", "Club Ciclista Huesca" and "Huesca CC"
// all map to "HUESCA"; missing or blank names map to "INDEPENDIENTE".
//
// The normalizer is configured with functional options:
//
//	n, err := monegros.New(monegros.WithComposeUnicode(true))
//	name := n.Normalize("Peña Ciclista Example") // "EXAMPLE"
package monegros

import (
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/monegros/internal/adapters/logger"
	"github.com/baditaflorin/monegros/internal/adapters/normalizer"
	"github.com/baditaflorin/monegros/internal/core/club"
	"github.com/baditaflorin/monegros/internal/ports"
)

// Independent is the canonical name for riders without a club.
const Independent = club.Independent

// ClubNormalizer maps raw club cells to canonical names.
type ClubNormalizer struct {
	clubs  *club.Normalizer
	logger ports.Logger
}

// Option defines a functional option for configuring the normalizer.
type Option func(*options)

type options struct {
	Logger         ports.Logger
	Folder         ports.Normalizer
	FullFolding    bool
	ComposeUnicode bool
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *options) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithFolder replaces the upper-casing step.
func WithFolder(folder ports.Normalizer) Option {
	return func(cfg *options) {
		cfg.Folder = folder
	}
}

// WithFullFolding applies Unicode special casing to every input instead of
// taking the ASCII fast path.
func WithFullFolding(enabled bool) Option {
	return func(cfg *options) {
		cfg.FullFolding = enabled
	}
}

// WithComposeUnicode composes decomposed input (NFC) before upper-casing.
func WithComposeUnicode(enabled bool) Option {
	return func(cfg *options) {
		cfg.ComposeUnicode = enabled
	}
}

// New creates a ClubNormalizer.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*ClubNormalizer, error) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		log, err := logger.NewStdLogger(logger.Options{Output: os.Stderr})
		if err != nil {
			return nil, err
		}
		cfg.Logger = log
	}

	if cfg.Folder == nil {
		kind := normalizer.OptimizedNormalizerType
		if cfg.FullFolding {
			kind = normalizer.DefaultNormalizerType
		}
		cfg.Folder = normalizer.NewNormalizerFactory().CreateNormalizer(kind, cfg.ComposeUnicode)
	} else if cfg.ComposeUnicode {
		cfg.Folder = normalizer.NewComposingNormalizer(cfg.Folder)
	}

	return &ClubNormalizer{
		clubs:  club.NewNormalizer(cfg.Folder),
		logger: cfg.Logger,
	}, nil
}

// Normalize returns the canonical name for raw.
func (n *ClubNormalizer) Normalize(raw string) string {
	out := n.clubs.Normalize(raw)
	n.logger.Debug("Normalized club", "raw", raw, "canonical", out)
	return out
}

// NormalizeValue accepts any cell value. Strings and non-nil *string are
// normalized; everything else maps to Independent.
func (n *ClubNormalizer) NormalizeValue(v interface{}) string {
	return n.clubs.NormalizeValue(v)
}

// NormalizeAll normalizes a batch, preserving order.
func (n *ClubNormalizer) NormalizeAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = n.clubs.Normalize(r)
	}
	n.logger.Debug("Normalized clubs", "count", len(raw))
	return out
}

var defaultClubs = club.NewNormalizer(normalizer.NewOptimizedNormalizer())

// NormalizeClub normalizes raw with the default settings and no logging.
func NormalizeClub(raw string) string {
	return defaultClubs.Normalize(raw)
}

// NormalizeClubValue is NormalizeClub for arbitrary cell values.
func NormalizeClubValue(v interface{}) string {
	return defaultClubs.NormalizeValue(v)
}

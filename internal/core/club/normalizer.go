// Package club maps raw club cells to canonical club names and counts
// participants per club.
package club

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/monegros/internal/ports"
)

// Independent is the canonical name for riders without a recognizable club.
const Independent = "INDEPENDIENTE"

type ruleKind int

const (
	// removes every occurrence anywhere in the string
	phraseRule ruleKind = iota
	// removes one match anchored at the start
	prefixRule
	// removes one match anchored at the end
	suffixRule
)

type rule struct {
	kind    ruleKind
	pattern string
}

var phrases = []string{
	"PEÑA CICLISTA ", "PENYA CICLISTA ",
	"AGRUPACIÓN CICLISTA ", "AGRUPACION CICLISTA ",
	"AGRUPACIÓ CICLISTA ", "AGRUPACIO CICLISTA ",
	"CLUB CICLISTA ", "CLUB ",
}

var (
	prefixFamilies = []string{"CC", "CD", "AC", "AD", "AE", "EC", "SC", "SD"}
	suffixFamilies = []string{"TT", "TE", "CC", "CD", "AD", "AC"}
)

// abbreviations expands a two-letter family into its accepted spellings,
// most punctuated first: "C.C.", "C.C", "CC".
func abbreviations(family string) []string {
	x, y := family[:1], family[1:]
	return []string{x + "." + y + ".", x + "." + y, x + y}
}

// rules is the ordered rewrite table applied by Normalizer.
var rules = buildRules()

func buildRules() []rule {
	var out []rule
	for _, p := range phrases {
		out = append(out, rule{kind: phraseRule, pattern: p})
	}
	for _, f := range prefixFamilies {
		for _, a := range abbreviations(f) {
			out = append(out, rule{kind: prefixRule, pattern: a + " "})
		}
	}
	for _, f := range suffixFamilies {
		for _, a := range abbreviations(f) {
			out = append(out, rule{kind: suffixRule, pattern: " " + a})
		}
	}
	return out
}

func (r rule) apply(s string) string {
	switch r.kind {
	case phraseRule:
		return strings.ReplaceAll(s, r.pattern, "")
	case prefixRule:
		return strings.TrimPrefix(s, r.pattern)
	case suffixRule:
		// The end anchor also matches right before one trailing newline.
		body, nl := s, ""
		if strings.HasSuffix(s, "\n") {
			body, nl = s[:len(s)-1], "\n"
		}
		if strings.HasSuffix(body, r.pattern) {
			return strings.TrimSuffix(body, r.pattern) + nl
		}
		return s
	}
	return s
}

// isSpace reports Unicode white space plus the ASCII file, group, record and
// unit separators (U+001C..U+001F), which also count as space when trimming.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Normalizer produces canonical club names. It is stateless apart from its
// case folder and safe for concurrent use.
type Normalizer struct {
	folder ports.Normalizer
}

// NewNormalizer creates a club normalizer that upper-cases with folder.
func NewNormalizer(folder ports.Normalizer) *Normalizer {
	return &Normalizer{folder: folder}
}

// Normalize returns the canonical club name for raw. Empty input, and input
// that strips down to nothing, yields Independent.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := n.folder.Normalize(raw)
	for _, r := range rules {
		cleaned = r.apply(cleaned)
	}
	cleaned = strings.TrimFunc(cleaned, isSpace)
	if cleaned == "" {
		return Independent
	}
	return cleaned
}

// NormalizeValue normalizes an arbitrary cell value. Only strings and non-nil
// string pointers are treated as club names; everything else is Independent.
func (n *Normalizer) NormalizeValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return n.Normalize(s)
	case *string:
		if s == nil {
			return Independent
		}
		return n.Normalize(*s)
	default:
		return Independent
	}
}

var _ ports.ClubNormalizer = (*Normalizer)(nil)

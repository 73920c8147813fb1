package club

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/monegros/internal/adapters/normalizer"
	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/ports"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(normalizer.NewDefaultNormalizer())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"abbreviated prefix", "C.C. Huesca", "HUESCA"},
		{"club ciclista phrase", "Club Ciclista Oscense", "OSCENSE"},
		{"peña phrase", "PEÑA CICLISTA EXAMPLE", "EXAMPLE"},
		{"penya phrase", "Penya Ciclista Manresa", "MANRESA"},
		{"agrupacion with accent", "Agrupación Ciclista Montañera", "MONTAÑERA"},
		{"agrupacio catalan", "Agrupació Ciclista Vic", "VIC"},
		{"bare club phrase", "Club Huesca", "HUESCA"},
		{"prefix a.c.", "A.C. Testing", "TESTING"},
		{"prefix without trailing period", "C.D Zaragoza", "ZARAGOZA"},
		{"prefix unpunctuated", "SD Huesca", "HUESCA"},
		{"suffix c.c.", "Testing C.C.", "TESTING"},
		{"suffix unpunctuated", "Monegros TT", "MONEGROS"},
		{"suffix t.e", "Calatayud T.E", "CALATAYUD"},
		{"prefix and suffix", "C.C. Test C.C.", "TEST"},
		{"mixed families", "A.D. Test A.C.", "TEST"},
		{"phrase then suffix", "Agrupación Ciclista Montañera CC", "MONTAÑERA"},
		{"phrase removed mid string", "Unio Ciclista Club Sant Cugat", "UNIO CICLISTA SANT CUGAT"},
		{"later prefix sees earlier result", "C.C. CC Huesca", "HUESCA"},
		{"same prefix removed once", "CC CC Huesca", "CC HUESCA"},
		{"suffix before trailing newline", "Huesca CC\n", "HUESCA"},
		{"surrounding whitespace", "  ucsc  ", "UCSC"},
		{"leading space blocks prefix", " C.C. Huesca", "C.C. HUESCA"},
		{"sentinel unchanged", "INDEPENDIENTE", Independent},
		{"empty", "", Independent},
		{"whitespace only", "   ", Independent},
		{"phrase only", "Club ", Independent},
		{"sharp s expands", "Radsport Straße", "RADSPORT STRASSE"},
		{"unit separator trimmed", "x\x1f", "X"},
		{"leading file separator trimmed", "\x1cHuesca CC", "HUESCA"},
		{"no-break space trimmed", "\u00a0UCSC\u3000", "UCSC"},
		{"separators only", "\x1c\x1d\x1e\x1f", Independent},
	}

	n := newTestNormalizer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(tc.raw))
		})
	}
}

func TestNormalizeDoesNotOverStrip(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "CICLOS TECC", n.Normalize("Ciclos Tecc"))
	assert.Equal(t, "CCHUESCA", n.Normalize("CCHuesca"))
	assert.Equal(t, "ACCIONA", n.Normalize("Acciona"))
	assert.Equal(t, "HUESCA.CC", n.Normalize("Huesca.CC"))
}

func TestNormalizeIsCaseInsensitive(t *testing.T) {
	n := newTestNormalizer()
	assert.Equal(t, n.Normalize("C.C. HUESCA"), n.Normalize("c.c. huesca"))
}

func TestNormalizeValue(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{"untyped nil", nil, Independent},
		{"nil pointer", (*string)(nil), Independent},
		{"pointer", domain.StrPtr("C.C. Huesca"), "HUESCA"},
		{"string", "Club Ciclista Oscense", "OSCENSE"},
		{"integer", 42, Independent},
		{"float", 3.5, Independent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.NormalizeValue(tc.v))
		})
	}
}

func TestNormalizeSentinelStability(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, Independent, n.NormalizeValue(nil))
	assert.Equal(t, Independent, n.Normalize(""))
	assert.Equal(t, Independent, n.Normalize("   "))
}

func TestNormalizeIsStableOnCanonicalNames(t *testing.T) {
	corpus := []string{
		"C.C. Huesca", "Club Ciclista Oscense", "Peña Ciclista Example",
		"A.C. Testing", "Testing C.C.", "C.C. Test C.C.", "A.D. Test A.C.",
		"Unió Ciclista Sant Cugat", "UCSC", "S.D. Huesca T.T.",
		"Agrupación Ciclista Montañera CC", "E.C. Barbastro", "", "   ",
		"HUESCA", "INDEPENDIENTE", "Ciclos Tecc",
	}

	n := newTestNormalizer()
	for _, raw := range corpus {
		once := n.Normalize(raw)
		assert.NotEmpty(t, once)
		assert.Equal(t, once, n.Normalize(once), "raw %q", raw)
	}
}

func TestNormalizeWithComposingFolder(t *testing.T) {
	n := NewNormalizer(normalizer.NewComposingNormalizer(normalizer.NewOptimizedNormalizer()))
	assert.Equal(t, "EXAMPLE", n.Normalize("Peña Ciclista Example"))
}

func TestRuleTableOrder(t *testing.T) {
	require.Len(t, rules, len(phrases)+3*len(prefixFamilies)+3*len(suffixFamilies))

	assert.Equal(t, rule{kind: phraseRule, pattern: "PEÑA CICLISTA "}, rules[0])
	assert.Equal(t, rule{kind: phraseRule, pattern: "CLUB "}, rules[len(phrases)-1])

	firstPrefix := rules[len(phrases):][:3]
	assert.Equal(t, []rule{
		{kind: prefixRule, pattern: "C.C. "},
		{kind: prefixRule, pattern: "C.C "},
		{kind: prefixRule, pattern: "CC "},
	}, firstPrefix)

	last := rules[len(rules)-1]
	assert.Equal(t, rule{kind: suffixRule, pattern: " AC"}, last)
}

func TestAnalyze(t *testing.T) {
	ds := domain.NewDataset([]domain.Row{
		{Dorsal: 1, Biker: "A", Club: domain.StrPtr("C.C. Huesca"), Time: "05:00:00"},
		{Dorsal: 2, Biker: "B", Club: domain.StrPtr("Huesca CC"), Time: "05:10:00"},
		{Dorsal: 3, Biker: "C", Club: nil, Time: "05:20:00"},
		{Dorsal: 4, Biker: "D", Club: domain.StrPtr("UCSC"), Time: "05:30:00"},
		{Dorsal: 5, Biker: "E", Club: domain.StrPtr(""), Time: "05:40:00"},
	})

	a := NewAnalyzer(newTestNormalizer(), ports.NopLogger{})
	out, summary, err := a.Analyze(context.Background(), ds)
	require.NoError(t, err)

	assert.True(t, out.HasColumn(domain.ColumnClubClean))
	assert.False(t, ds.HasColumn(domain.ColumnClubClean), "input must not be modified")
	assert.Equal(t, "HUESCA", out.Rows[0].ClubClean)
	assert.Equal(t, Independent, out.Rows[2].ClubClean)
	assert.Empty(t, ds.Rows[0].ClubClean)

	assert.Equal(t, []domain.ClubCount{
		{Club: "HUESCA", Participants: 2},
		{Club: Independent, Participants: 2},
		{Club: "UCSC", Participants: 1},
	}, summary)
}

func TestAnalyzeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := domain.NewDataset([]domain.Row{{Dorsal: 1, Time: "05:00:00"}})
	_, _, err := NewAnalyzer(newTestNormalizer(), ports.NopLogger{}).Analyze(ctx, ds)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkNormalize(b *testing.B) {
	n := newTestNormalizer()
	for i := 0; i < b.N; i++ {
		n.Normalize("Agrupación Ciclista Montañera C.C.")
	}
}

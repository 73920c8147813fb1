package anonymize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/ports"
)

type sequenceNames struct {
	names []string
	next  int
}

func (s *sequenceNames) Name() string {
	n := s.names[s.next%len(s.names)]
	s.next++
	return n
}

func sampleDataset() *domain.Dataset {
	return domain.NewDataset([]domain.Row{
		{Dorsal: 1, Biker: "John Doe", Club: domain.StrPtr("Club A"), Time: "05:30:00"},
		{Dorsal: 2, Biker: "Jane Smith", Club: domain.StrPtr("Club B"), Time: "00:00:00"},
		{Dorsal: 3, Biker: "Bob Johnson", Club: domain.StrPtr("Club C"), Time: "06:15:00"},
		{Dorsal: 4, Biker: "Alice Brown", Club: domain.StrPtr("Club D"), Time: "00:00:00"},
	})
}

func TestAnonymizeNames(t *testing.T) {
	ds := sampleDataset()
	gen := &sequenceNames{names: []string{
		"Jane Smith", "Ana Pérez", "Ana Pérez", "Luis Gil", "Marta Roy", "Pau Vila",
	}}

	out, err := NewAnonymizer(gen, ports.NopLogger{}).AnonymizeNames(context.Background(), ds)
	require.NoError(t, err)
	require.Equal(t, ds.Len(), out.Len())
	assert.Equal(t, ds.Columns, out.Columns)

	seen := map[string]bool{}
	originals := map[string]bool{}
	for _, r := range ds.Rows {
		originals[r.Biker] = true
	}
	for i, r := range out.Rows {
		assert.False(t, originals[r.Biker], "original name %q reused", r.Biker)
		assert.False(t, seen[r.Biker], "duplicate name %q", r.Biker)
		seen[r.Biker] = true

		assert.Equal(t, ds.Rows[i].Dorsal, r.Dorsal)
		assert.Equal(t, *ds.Rows[i].Club, *r.Club)
		assert.Equal(t, ds.Rows[i].Time, r.Time)
	}
	assert.Equal(t, []string{"Ana Pérez", "Luis Gil", "Marta Roy", "Pau Vila"},
		[]string{out.Rows[0].Biker, out.Rows[1].Biker, out.Rows[2].Biker, out.Rows[3].Biker})
	assert.Equal(t, "John Doe", ds.Rows[0].Biker, "input must not be modified")
}

func TestAnonymizeNamesExhausted(t *testing.T) {
	gen := &sequenceNames{names: []string{"John Doe"}}

	_, err := NewAnonymizer(gen, ports.NopLogger{}).AnonymizeNames(context.Background(), sampleDataset())
	assert.ErrorIs(t, err, ErrNamesExhausted)
}

func TestClean(t *testing.T) {
	ds := sampleDataset()

	out := NewAnonymizer(&sequenceNames{names: []string{"x"}}, ports.NopLogger{}).Clean(ds)

	require.Equal(t, 2, out.Len())
	for _, r := range out.Rows {
		assert.NotEqual(t, domain.NoFinishTime, r.Time)
		assert.Contains(t, []string{"05:30:00", "06:15:00"}, r.Time)
	}
	assert.Equal(t, 4, ds.Len())
}

func TestFindDorsal(t *testing.T) {
	ds := sampleDataset()

	rows := FindDorsal(ds, 3)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob Johnson", rows[0].Biker)

	assert.Empty(t, FindDorsal(ds, 1000))
}

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/monegros/internal/core/domain"
)

var rows = []domain.Row{
	{Dorsal: 1000, Biker: "Ana Pérez", Club: domain.StrPtr("C.C. Huesca"), Time: "05:19:40", ClubClean: "HUESCA"},
	{Dorsal: 1001, Biker: "Luis Gil", Time: "06:29:40", ClubClean: "INDEPENDIENTE"},
}

func TestTextRows(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText)

	require.NoError(t, p.Rows("First rows", rows, []string{domain.ColumnDorsal, domain.ColumnClub, domain.ColumnClubClean}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "First rows", lines[0])
	assert.Equal(t, []string{"dorsal", "club", "club_clean"}, strings.Fields(lines[1]))
	assert.Equal(t, "1000    C.C. Huesca  HUESCA", lines[2])
	assert.Equal(t, []string{"1001", "NaN", "INDEPENDIENTE"}, strings.Fields(lines[3]))
}

func TestTextCounts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "unknown")

	require.NoError(t, p.TimeCounts("Frequencies", []domain.TimeCount{{Group: "05:00", Count: 3}}))
	require.NoError(t, p.ClubCounts("Clubs", []domain.ClubCount{{Club: "UCSC", Participants: 2}}))

	out := buf.String()
	assert.Contains(t, out, "time_grouped  count")
	assert.Contains(t, out, "05:00         3")
	assert.Contains(t, out, "UCSC  2")
}

func TestJSONSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)

	require.NoError(t, p.Rows("rows", rows, nil))
	require.NoError(t, p.Position("best", rows[0], domain.PositionInfo{Position: 1, Total: 6, Percentage: 16.666}))

	dec := json.NewDecoder(&buf)
	var first struct {
		Section string `json:"section"`
		Data    []struct {
			Dorsal    int     `json:"dorsal"`
			Club      *string `json:"club"`
			ClubClean string  `json:"club_clean"`
		} `json:"data"`
	}
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "rows", first.Section)
	require.Len(t, first.Data, 2)
	assert.Nil(t, first.Data[1].Club)
	assert.Equal(t, "HUESCA", first.Data[0].ClubClean)

	var second struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "16.67", second.Data["percentage"])
	assert.Equal(t, float64(1), second.Data["position"])
}

func TestYAMLSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML)

	require.NoError(t, p.ClubCounts("clubs", []domain.ClubCount{{Club: "UCSC", Participants: 2}}))
	require.NoError(t, p.TimeCounts("times", []domain.TimeCount{{Group: "05:00", Count: 1}}))
	require.NoError(t, p.Close())

	dec := yaml.NewDecoder(&buf)
	var doc struct {
		Section string `yaml:"section"`
		Data    []struct {
			Club         string `yaml:"club"`
			Participants int    `yaml:"participants"`
		} `yaml:"data"`
	}
	require.NoError(t, dec.Decode(&doc))
	assert.Equal(t, "clubs", doc.Section)
	assert.Equal(t, 2, doc.Data[0].Participants)

	var next map[string]interface{}
	require.NoError(t, dec.Decode(&next))
	assert.Equal(t, "times", next["section"])
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard().Rows("x", rows, []string{domain.ColumnBiker}))
}

func TestHeading(t *testing.T) {
	var text, js bytes.Buffer

	require.NoError(t, NewPrinter(&text, FormatText).Heading("Exercise 1"))
	require.NoError(t, NewPrinter(&js, FormatJSON).Heading("Exercise 1"))

	assert.Equal(t, "\n=== Exercise 1 ===\n", text.String())
	assert.Empty(t, js.String())
}

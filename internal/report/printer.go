// Package report prints the tables produced by each pipeline step.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/pool"
)

// Format selects how sections are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Printer writes titled sections to an output stream.
type Printer struct {
	w        io.Writer
	format   Format
	builders *pool.BuilderPool
	yaml     *yaml.Encoder
}

// NewPrinter creates a printer. Unknown formats fall back to text.
func NewPrinter(w io.Writer, format Format) *Printer {
	p := &Printer{w: w, format: format, builders: pool.NewBuilderPool()}
	switch format {
	case FormatJSON, FormatYAML:
	default:
		p.format = FormatText
	}
	if p.format == FormatYAML {
		p.yaml = yaml.NewEncoder(w)
		p.yaml.SetIndent(2)
	}
	return p
}

// Discard returns a printer that writes nothing.
func Discard() *Printer {
	return NewPrinter(io.Discard, FormatText)
}

// Close flushes any buffered structured output.
func (p *Printer) Close() error {
	if p.yaml != nil {
		return p.yaml.Close()
	}
	return nil
}

type section struct {
	Section string      `json:"section" yaml:"section"`
	Data    interface{} `json:"data" yaml:"data"`
}

func (p *Printer) structured(title string, data interface{}) error {
	switch p.format {
	case FormatJSON:
		b, err := json.Marshal(section{Section: title, Data: data})
		if err != nil {
			return fmt.Errorf("encode %s: %w", title, err)
		}
		_, err = fmt.Fprintf(p.w, "%s\n", b)
		return err
	case FormatYAML:
		if err := p.yaml.Encode(section{Section: title, Data: data}); err != nil {
			return fmt.Errorf("encode %s: %w", title, err)
		}
	}
	return nil
}

// table renders header and rows as aligned text below title.
func (p *Printer) table(title string, header []string, rows [][]string) error {
	sb := p.builders.Get()
	defer p.builders.Put(sb)

	sb.WriteString(title)
	sb.WriteString("\n")
	tw := tabwriter.NewWriter(sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(p.w, sb.String())
	return err
}

type rowView struct {
	Dorsal      int     `json:"dorsal" yaml:"dorsal"`
	Biker       string  `json:"biker" yaml:"biker"`
	Club        *string `json:"club" yaml:"club"`
	Time        string  `json:"time" yaml:"time"`
	TimeGrouped string  `json:"time_grouped,omitempty" yaml:"time_grouped,omitempty"`
	ClubClean   string  `json:"club_clean,omitempty" yaml:"club_clean,omitempty"`
}

func cell(r domain.Row, column string) string {
	switch column {
	case domain.ColumnDorsal:
		return strconv.Itoa(r.Dorsal)
	case domain.ColumnBiker:
		return r.Biker
	case domain.ColumnClub:
		if r.Club == nil {
			return "NaN"
		}
		return *r.Club
	case domain.ColumnTime:
		return r.Time
	case domain.ColumnTimeGrouped:
		return r.TimeGroup
	case domain.ColumnClubClean:
		return r.ClubClean
	}
	return ""
}

// Rows prints the given columns of rows.
func (p *Printer) Rows(title string, rows []domain.Row, columns []string) error {
	if p.format != FormatText {
		views := make([]rowView, len(rows))
		for i, r := range rows {
			views[i] = rowView{r.Dorsal, r.Biker, r.Club, r.Time, r.TimeGroup, r.ClubClean}
		}
		return p.structured(title, views)
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(columns))
		for j, c := range columns {
			line[j] = cell(r, c)
		}
		cells[i] = line
	}
	return p.table(title, columns, cells)
}

// Values prints an ordered list of labelled values.
func (p *Printer) Values(title string, keys []string, values map[string]interface{}) error {
	if p.format != FormatText {
		return p.structured(title, values)
	}
	cells := make([][]string, len(keys))
	for i, k := range keys {
		cells[i] = []string{k, fmt.Sprint(values[k])}
	}
	return p.table(title, []string{"key", "value"}, cells)
}

// TimeCounts prints the histogram frequency table.
func (p *Printer) TimeCounts(title string, counts []domain.TimeCount) error {
	if p.format != FormatText {
		return p.structured(title, counts)
	}
	cells := make([][]string, len(counts))
	for i, c := range counts {
		cells[i] = []string{c.Group, strconv.Itoa(c.Count)}
	}
	return p.table(title, []string{domain.ColumnTimeGrouped, "count"}, cells)
}

// ClubCounts prints participant counts per club.
func (p *Printer) ClubCounts(title string, counts []domain.ClubCount) error {
	if p.format != FormatText {
		return p.structured(title, counts)
	}
	cells := make([][]string, len(counts))
	for i, c := range counts {
		cells[i] = []string{c.Club, strconv.Itoa(c.Participants)}
	}
	return p.table(title, []string{"club", "participants"}, cells)
}

// Position prints a rider's place in the classification.
func (p *Printer) Position(title string, best domain.Row, pos domain.PositionInfo) error {
	values := map[string]interface{}{
		"biker":      best.Biker,
		"time":       best.Time,
		"position":   pos.Position,
		"total":      pos.Total,
		"percentage": fmt.Sprintf("%.2f", pos.Percentage),
	}
	return p.Values(title, []string{"biker", "time", "position", "total", "percentage"}, values)
}

// Heading announces a pipeline step. Structured formats skip it.
func (p *Printer) Heading(title string) error {
	if p.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "\n=== %s ===\n", title)
	return err
}

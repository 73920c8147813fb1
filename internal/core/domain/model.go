package domain

import "errors"

// Column names carried by a Dataset.
const (
	ColumnDorsal      = "dorsal"
	ColumnBiker       = "biker"
	ColumnClub        = "club"
	ColumnTime        = "time"
	ColumnTimeGrouped = "time_grouped"
	ColumnClubClean   = "club_clean"
)

// NoFinishTime marks a registered rider that did not take part.
const NoFinishTime = "00:00:00"

var (
	// ErrInvalidTime is returned when a finishing time is not a valid HH:MM:SS clock value.
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM:SS")
	// ErrMissingColumn is returned when a step needs a column an earlier step adds.
	ErrMissingColumn = errors.New("missing column")
	// ErrInvalidRow is returned when a source row cannot be parsed.
	ErrInvalidRow = errors.New("invalid row")
)

// Row is a single race result.
type Row struct {
	Dorsal int
	Biker  string
	// Club is nil when the source cell was empty.
	Club      *string
	Time      string
	TimeGroup string
	ClubClean string
}

// Dataset is an ordered, in-memory table of race results.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// NewDataset builds a dataset with the base source columns.
func NewDataset(rows []Row) *Dataset {
	return &Dataset{
		Columns: []string{ColumnDorsal, ColumnBiker, ColumnClub, ColumnTime},
		Rows:    rows,
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so steps never mutate their input.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, r := range d.Rows {
		if r.Club != nil {
			c := *r.Club
			r.Club = &c
		}
		out.Rows[i] = r
	}
	return out
}

// WithColumn returns a copy of the dataset with the column registered.
func (d *Dataset) WithColumn(name string) *Dataset {
	out := d.Clone()
	if !out.HasColumn(name) {
		out.Columns = append(out.Columns, name)
	}
	return out
}

// Head returns at most n leading rows.
func (d *Dataset) Head(n int) []Row {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// TimeCount is one bar of the finishing-time histogram.
type TimeCount struct {
	Group string `json:"time_grouped" yaml:"time_grouped"`
	Count int    `json:"count" yaml:"count"`
}

// ClubCount is the number of participants of a canonical club.
type ClubCount struct {
	Club         string `json:"club" yaml:"club"`
	Participants int    `json:"participants" yaml:"participants"`
}

// PositionInfo locates a rider in the overall classification.
type PositionInfo struct {
	Position   int     `json:"position" yaml:"position"`
	Total      int     `json:"total" yaml:"total"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// ClubResult holds the outcome of a single-club analysis.
type ClubResult struct {
	Club    string
	Members []Row
	// Best is nil when the club has no members.
	Best     *Row
	Position *PositionInfo
}

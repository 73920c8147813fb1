// Package timebucket groups finishing times into 20-minute intervals.
package timebucket

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/ports"
)

const clockLayout = "15:04:05"

// ParseClock parses an HH:MM:SS finishing time.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTime, s)
	}
	return t, nil
}

// Seconds returns the number of seconds an HH:MM:SS time represents.
func Seconds(s string) (int, error) {
	t, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// Bucket maps a finishing time to the start of its 20-minute interval:
// "06:19:40" -> "06:00", "06:29:40" -> "06:20", "06:59:40" -> "06:40".
func Bucket(s string) (string, error) {
	t, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	minutes := t.Minute() / 20 * 20
	return fmt.Sprintf("%02d:%02d", t.Hour(), minutes), nil
}

// Histogram buckets every row of a dataset.
type Histogram struct {
	logger ports.Logger
}

// NewHistogram creates a histogram builder.
func NewHistogram(logger ports.Logger) *Histogram {
	return &Histogram{logger: logger}
}

// Group returns a copy of ds with the time_grouped column filled in, and the
// frequency table of groups sorted by label.
func (h *Histogram) Group(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, []domain.TimeCount, error) {
	h.logger.Info("Grouping finishing times", "rows", ds.Len())

	out := ds.WithColumn(domain.ColumnTimeGrouped)
	groups := make([]string, len(out.Rows))
	for i := range out.Rows {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		g, err := Bucket(out.Rows[i].Time)
		if err != nil {
			h.logger.Error("Invalid time format", "dorsal", out.Rows[i].Dorsal, "time", out.Rows[i].Time)
			return nil, nil, fmt.Errorf("dorsal %d: %w", out.Rows[i].Dorsal, err)
		}
		out.Rows[i].TimeGroup = g
		groups[i] = g
	}

	counts := Count(groups)

	h.logger.Info("Finishing times grouped", "groups", len(counts))
	return out, counts, nil
}

// Count returns the frequency table of group labels sorted by label.
func Count(groups []string) []domain.TimeCount {
	freq := make(map[string]int)
	for _, g := range groups {
		freq[g]++
	}

	counts := make([]domain.TimeCount, 0, len(freq))
	for g, n := range freq {
		counts = append(counts, domain.TimeCount{Group: g, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Group < counts[j].Group })
	return counts
}

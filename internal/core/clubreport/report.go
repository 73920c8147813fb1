// Package clubreport locates the best rider of one club in the overall classification.
package clubreport

import (
	"context"
	"fmt"
	"sort"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/core/timebucket"
	"github.com/baditaflorin/monegros/internal/ports"
)

// DefaultClub is the canonical name analysed when none is configured.
const DefaultClub = "UCSC"

// Analyzer reports on the riders of one canonical club.
type Analyzer struct {
	club   string
	logger ports.Logger
}

// NewAnalyzer creates a report for club. An empty club selects DefaultClub.
func NewAnalyzer(club string, logger ports.Logger) *Analyzer {
	if club == "" {
		club = DefaultClub
	}
	return &Analyzer{club: club, logger: logger}
}

// Analyze selects the club's riders, its fastest rider and that rider's
// position among all riders. The dataset must carry the club_clean column.
func (a *Analyzer) Analyze(ctx context.Context, ds *domain.Dataset) (*domain.ClubResult, error) {
	if !ds.HasColumn(domain.ColumnClubClean) {
		a.logger.Error("Dataset has no canonical club column", "column", domain.ColumnClubClean)
		return nil, fmt.Errorf("%w %q: run the club analysis first", domain.ErrMissingColumn, domain.ColumnClubClean)
	}
	a.logger.Info("Analyzing club riders", "club", a.club)

	secs := make([]int, ds.Len())
	for i, r := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := timebucket.Seconds(r.Time)
		if err != nil {
			return nil, fmt.Errorf("dorsal %d: %w", r.Dorsal, err)
		}
		secs[i] = s
	}

	result := &domain.ClubResult{Club: a.club}
	best := -1
	for i, r := range ds.Rows {
		if r.ClubClean != a.club {
			continue
		}
		result.Members = append(result.Members, r)
		if best < 0 || secs[i] < secs[best] {
			best = i
		}
	}

	if best < 0 {
		a.logger.Warn("No riders found for club", "club", a.club)
		return result, nil
	}

	bestRow := ds.Rows[best]
	result.Best = &bestRow

	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return secs[order[i]] < secs[order[j]] })

	position := 0
	for rank, idx := range order {
		if idx == best {
			position = rank + 1
			break
		}
	}
	total := ds.Len()
	result.Position = &domain.PositionInfo{
		Position:   position,
		Total:      total,
		Percentage: float64(position) / float64(total) * 100,
	}

	a.logger.Info("Best club rider located",
		"biker", bestRow.Biker,
		"time", bestRow.Time,
		"position", position,
		"total", total,
		"percentage", fmt.Sprintf("%.2f", result.Position.Percentage),
	)
	return result, nil
}

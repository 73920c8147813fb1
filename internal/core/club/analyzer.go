package club

import (
	"context"
	"sort"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/ports"
)

// Analyzer annotates every row with its canonical club.
type Analyzer struct {
	normalizer ports.ClubNormalizer
	logger     ports.Logger
}

// NewAnalyzer creates a club analyzer.
func NewAnalyzer(normalizer ports.ClubNormalizer, logger ports.Logger) *Analyzer {
	return &Analyzer{normalizer: normalizer, logger: logger}
}

// Analyze returns a copy of ds with the club_clean column filled in, together
// with participant counts per canonical club, largest first.
func (a *Analyzer) Analyze(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, []domain.ClubCount, error) {
	a.logger.Info("Starting club analysis", "rows", ds.Len())

	out := ds.WithColumn(domain.ColumnClubClean)
	counts := make(map[string]int)
	for i := range out.Rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		canonical := a.normalizer.NormalizeValue(out.Rows[i].Club)
		out.Rows[i].ClubClean = canonical
		counts[canonical]++
	}

	summary := Summarize(counts)
	a.logger.Info("Club analysis completed", "clubs", len(summary))
	return out, summary, nil
}

// Summarize orders club counts by participants descending, then by name.
func Summarize(counts map[string]int) []domain.ClubCount {
	summary := make([]domain.ClubCount, 0, len(counts))
	for c, n := range counts {
		summary = append(summary, domain.ClubCount{Club: c, Participants: n})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Participants != summary[j].Participants {
			return summary[i].Participants > summary[j].Participants
		}
		return summary[i].Club < summary[j].Club
	})
	return summary
}

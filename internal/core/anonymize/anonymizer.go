// Package anonymize replaces rider names and drops non-finishers.
package anonymize

import (
	"context"
	"errors"
	"fmt"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/ports"
)

// maxAttempts bounds the retries spent finding an unused name for one row.
const maxAttempts = 100

// ErrNamesExhausted is returned when the generator keeps producing names
// already in use.
var ErrNamesExhausted = errors.New("name generator exhausted")

// Anonymizer replaces biker names with generated ones.
type Anonymizer struct {
	names  ports.NameGenerator
	logger ports.Logger
}

// NewAnonymizer creates an anonymizer drawing names from names.
func NewAnonymizer(names ports.NameGenerator, logger ports.Logger) *Anonymizer {
	return &Anonymizer{names: names, logger: logger}
}

// AnonymizeNames returns a copy of ds where every biker has a generated name.
// Generated names are unique within the dataset and never reuse an original name.
func (a *Anonymizer) AnonymizeNames(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, error) {
	a.logger.Info("Starting data anonymization", "rows", ds.Len())

	used := make(map[string]struct{}, 2*ds.Len())
	for _, r := range ds.Rows {
		used[r.Biker] = struct{}{}
	}

	out := ds.Clone()
	for i := range out.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, err := a.freshName(used)
		if err != nil {
			return nil, fmt.Errorf("dorsal %d: %w", out.Rows[i].Dorsal, err)
		}
		used[name] = struct{}{}
		out.Rows[i].Biker = name
	}
	return out, nil
}

func (a *Anonymizer) freshName(used map[string]struct{}) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		name := a.names.Name()
		if _, taken := used[name]; !taken {
			return name, nil
		}
	}
	return "", ErrNamesExhausted
}

// Clean returns the rows of ds whose time is not the no-finish marker.
func (a *Anonymizer) Clean(ds *domain.Dataset) *domain.Dataset {
	out := &domain.Dataset{Columns: append([]string(nil), ds.Columns...)}
	for _, r := range ds.Clone().Rows {
		if r.Time == domain.NoFinishTime {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	a.logger.Info("Dataset cleaned", "before", ds.Len(), "after", out.Len())
	return out
}

// FindDorsal returns the rows carrying the given dorsal number.
func FindDorsal(ds *domain.Dataset, dorsal int) []domain.Row {
	var rows []domain.Row
	for _, r := range ds.Rows {
		if r.Dorsal == dorsal {
			rows = append(rows, r)
		}
	}
	return rows
}

package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/monegros/internal/core/domain"
)

// RowSource loads race results.
type RowSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// NameGenerator produces fake full names for anonymization.
type NameGenerator interface {
	Name() string
}

// HistogramRenderer draws the finishing-time distribution.
type HistogramRenderer interface {
	Render(w io.Writer, title string, counts []domain.TimeCount) error
}

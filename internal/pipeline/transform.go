package pipeline

import (
	"context"
	"log/slog"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
)

// TrackTransformer implements Transformer using the domain normalizer.
type TrackTransformer struct {
	opts   domain.NormalizeOptions
	logger *slog.Logger
}

// NewTransformer creates a TrackTransformer. With lenient set, unknown status
// codes and impossible dates become missing values instead of aborting the
// run.
func NewTransformer(lenient bool, logger *slog.Logger) *TrackTransformer {
	return &TrackTransformer{
		opts:   domain.NormalizeOptions{Lenient: lenient},
		logger: logger,
	}
}

func (t *TrackTransformer) Transform(_ context.Context, rec domain.CompositeRecord) (domain.TrackPoint, error) {
	tp, err := domain.Normalize(rec, t.opts)
	if err != nil {
		return domain.TrackPoint{}, err
	}

	if t.opts.Lenient {
		if tp.Status == domain.StatusMissing {
			t.logger.Warn("unknown status marked missing",
				"line", rec.Point.Line, "storm", tp.UniqueID, "code", rec.Point.Status)
		}
		if tp.Timestamp.IsZero() {
			t.logger.Warn("invalid date marked missing",
				"line", rec.Point.Line, "storm", tp.UniqueID)
		}
	}
	return tp, nil
}

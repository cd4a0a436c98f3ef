package sqlite

import (
	"context"
	"fmt"
)

// analyzableColumns are the value columns eligible for the zero-variance
// report. Surrogate key and ingestion bookkeeping are excluded.
var analyzableColumns = []string{
	"unique_id", "basin", "cyclone_number", "name",
	"year", "month", "day", "hour", "minute",
	"timestamp", "record_id", "status", "latitude", "longitude",
	"max_wind", "min_pressure",
	"radii_34_ne", "radii_34_se", "radii_34_sw", "radii_34_nw",
	"radii_50_ne", "radii_50_se", "radii_50_sw", "radii_50_nw",
	"radii_64_ne", "radii_64_se", "radii_64_sw", "radii_64_nw",
	"max_wind_radius",
}

// ConstantColumns reports columns holding at most one distinct non-NULL value
// across the whole dataset. This is a dataset-level convenience for
// downstream analysis, not a parsing invariant: a single-basin file makes
// "basin" constant without anything being wrong with it. It only ever
// reports; removal is a separate, explicit call.
func (s *Store) ConstantColumns(ctx context.Context) ([]string, error) {
	total, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	var constant []string
	for _, col := range analyzableColumns {
		var distinct int
		q := fmt.Sprintf(`SELECT COUNT(DISTINCT %s) FROM track_points`, col)
		if err := s.db.QueryRowContext(ctx, q).Scan(&distinct); err != nil {
			return nil, fmt.Errorf("analyze column %s: %w", col, err)
		}
		// COUNT(DISTINCT) ignores NULLs, so an all-NULL column counts as
		// constant too.
		if distinct <= 1 {
			constant = append(constant, col)
		}
	}
	return constant, nil
}

// PruneColumns drops the named columns from the dataset. Callers are expected
// to pass the output of ConstantColumns after reviewing it; names outside the
// analyzable set are rejected.
func (s *Store) PruneColumns(ctx context.Context, columns []string) error {
	allowed := make(map[string]struct{}, len(analyzableColumns))
	for _, col := range analyzableColumns {
		allowed[col] = struct{}{}
	}

	for _, col := range columns {
		if _, ok := allowed[col]; !ok {
			return fmt.Errorf("column %q is not prunable", col)
		}
		q := fmt.Sprintf(`ALTER TABLE track_points DROP COLUMN %s`, col)
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("drop column %s: %w", col, err)
		}
	}
	return nil
}

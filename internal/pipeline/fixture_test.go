package pipeline_test

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/observability"
)

// Fixture builders render well-formed HURDAT2 text through the domain
// formatter, so layout stays in one place.

func headerLine(basin, number string, year int, name string, entries int) string {
	return domain.FormatHeaderLine(domain.HeaderRecord{
		StormIdentity: domain.StormIdentity{
			Basin:         basin,
			CycloneNumber: number,
			Year:          year,
			Name:          name,
		},
		DeclaredEntries: entries,
	})
}

func dataLine(year, month, day, hour int, status string, lat, lon float64) string {
	wind := 80
	return domain.FormatDataLine(domain.TrackPoint{
		Year: year, Month: month, Day: day, Hour: hour,
		Status:    domain.Status(status),
		Latitude:  lat,
		Longitude: lon,
		MaxWind:   &wind,
	})
}

func inputFrom(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func headerRecord(basin, number string, year int, name string, entries int) domain.HeaderRecord {
	return domain.HeaderRecord{
		StormIdentity: domain.StormIdentity{
			Basin:         basin,
			CycloneNumber: number,
			Year:          year,
			Name:          name,
		},
		DeclaredEntries: entries,
	}
}

// compositeFor builds the minimum composite record the validator needs: a
// header identity plus the data-line year.
func compositeFor(hdr domain.HeaderRecord, pointYear int) domain.CompositeRecord {
	return domain.CompositeRecord{
		Header: hdr,
		Point:  domain.RawTrackPoint{Year: strconv.Itoa(pointYear)},
	}
}

func newTestMetrics() *observability.Metrics {
	// Fresh registry per call to avoid "already registered" panics.
	return observability.NewMetricsForTesting()
}

func testLogger() *slog.Logger {
	return slog.Default()
}

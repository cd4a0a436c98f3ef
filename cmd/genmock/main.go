// Command genmock generates a synthetic HURDAT2 best-track fixture. It
// renders header and data lines through the actual domain formatters and,
// when asked, runs the generated text back through the real pipeline to emit
// a normalized JSON fixture, so test data always matches parser behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/tracks.txt -storms 5 -year 2005
//	go run ./cmd/genmock -out testdata/tracks.txt -json-out testdata/tracks.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/observability"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/pipeline"
)

var names = []string{
	"UNNAMED", "ALICE", "BAKER", "CAMILLE", "DONNA",
	"ELOISE", "FLORA", "GILBERT", "HAZEL", "IONE",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the HURDAT2 text fixture")
	jsonOut := flag.String("json-out", "", "optional output path for the normalized JSON fixture")
	storms := flag.Int("storms", 5, "number of storms to generate")
	year := flag.Int("year", 2005, "season year")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Fixed clock for reproducible IngestedAt timestamps in the JSON fixture.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(*seed))

	var sb strings.Builder
	points := 0
	for i := 0; i < *storms; i++ {
		points += writeStorm(&sb, rng, *year, i+1)
	}
	text := sb.String()

	if err := os.WriteFile(*out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing text fixture: %w", err)
	}
	log.Printf("wrote %d storms, %d track points: %s", *storms, points, *out)

	if *jsonOut == "" {
		return nil
	}

	tracks, err := normalize(text)
	if err != nil {
		return fmt.Errorf("normalizing fixture: %w", err)
	}

	data, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON fixture: %w", err)
	}
	if err := os.WriteFile(*jsonOut, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing JSON fixture: %w", err)
	}
	log.Printf("wrote JSON fixture: %s", *jsonOut)
	return nil
}

// writeStorm appends one header block and its data lines, returning the
// number of data lines written. Tracks start in hurricane season, move
// northwest, and intensify then weaken the way real best tracks do.
func writeStorm(sb *strings.Builder, rng *rand.Rand, year, number int) int {
	identity := domain.StormIdentity{
		Basin:         "AL",
		CycloneNumber: fmt.Sprintf("%02d", number),
		Year:          year,
		Name:          names[rng.Intn(len(names))],
	}

	entries := 4 + rng.Intn(12)
	sb.WriteString(domain.FormatHeaderLine(domain.HeaderRecord{
		StormIdentity:   identity,
		DeclaredEntries: entries,
	}))
	sb.WriteString("\n")

	start := time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(rng.Intn(120*24)) * time.Hour).Truncate(6 * time.Hour)

	lat := 10.0 + rng.Float64()*15
	lon := -(20.0 + rng.Float64()*40)
	wind := 25 + rng.Intn(20)

	for j := 0; j < entries; j++ {
		ts := start.Add(time.Duration(j) * 6 * time.Hour)

		// Intensify through the first half of the track, weaken after.
		if j < entries/2 {
			wind += rng.Intn(15)
		} else {
			wind -= rng.Intn(15)
		}
		if wind < 15 {
			wind = 15
		}
		pressure := 1013 - wind

		tp := domain.TrackPoint{
			Basin:         identity.Basin,
			CycloneNumber: identity.CycloneNumber,
			Name:          identity.Name,
			Year:          ts.Year(),
			Month:         int(ts.Month()),
			Day:           ts.Day(),
			Hour:          ts.Hour(),
			Minute:        ts.Minute(),
			Status:        statusForWind(wind),
			Latitude:      lat,
			Longitude:     lon,
			MaxWind:       &wind,
			MinPressure:   &pressure,
		}
		if wind >= 64 && j == entries/2 {
			tp.RecordID = "I"
		}
		if wind >= 34 {
			r := 30 + rng.Intn(90)
			tp.Radii34NE, tp.Radii34SE, tp.Radii34SW, tp.Radii34NW = &r, &r, &r, &r
		}

		sb.WriteString(domain.FormatDataLine(tp))
		sb.WriteString("\n")

		lat += 0.2 + rng.Float64()*0.5
		lon += 0.1 + rng.Float64()*0.6
	}
	return entries
}

func statusForWind(wind int) domain.Status {
	switch {
	case wind >= 64:
		return domain.StatusHurricane
	case wind >= 34:
		return domain.StatusTropicalStorm
	default:
		return domain.StatusTropicalDepression
	}
}

// normalize runs the generated text through the real extract and transform
// stages.
func normalize(text string) ([]domain.TrackPoint, error) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics()

	asm := pipeline.NewAssembler(strings.NewReader(text), logger, metrics)
	transformer := pipeline.NewTransformer(false, logger)

	var tracks []domain.TrackPoint
	for {
		batch, err := asm.ExtractBatch(ctx, 500)
		for _, rec := range batch {
			tp, terr := transformer.Transform(ctx, rec)
			if terr != nil {
				return nil, terr
			}
			tracks = append(tracks, tp)
		}
		if errors.Is(err, io.EOF) {
			return tracks, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

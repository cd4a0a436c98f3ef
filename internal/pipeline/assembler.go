package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/observability"
)

// Header detection accepts any line that parses under the header layout with
// a year in this window. The bounds are deliberately loose: they only need to
// exclude data lines, whose header-shaped year slice lands on date digits
// ("0625" for a June 25 record still falls inside, but its entry-count slice
// then lands on coordinate text and fails the integer check).
const (
	minPlausibleYear = 1800
	maxPlausibleYear = 2100
)

// Assembler walks a HURDAT2 line stream and pairs each header with its
// declared run of data lines. It is the sole owner of the scan cursor;
// nothing else may advance the underlying reader. It implements
// BatchExtractor.
type Assembler struct {
	sc      *bufio.Scanner
	lineNo  int
	logger  *slog.Logger
	metrics *observability.Metrics

	current   domain.HeaderRecord
	remaining int
	headers   []domain.HeaderRecord
	exhausted bool
}

// NewAssembler creates an Assembler over a line stream.
func NewAssembler(r io.Reader, logger *slog.Logger, metrics *observability.Metrics) *Assembler {
	return &Assembler{
		sc:      bufio.NewScanner(r),
		logger:  logger,
		metrics: metrics,
	}
}

// ExtractBatch returns up to batchSize composite records in source order,
// then io.EOF once the input is exhausted. Structural errors (malformed data
// line inside a declared run, truncated storm, unreadable input) abort the
// scan immediately.
func (a *Assembler) ExtractBatch(ctx context.Context, batchSize int) ([]domain.CompositeRecord, error) {
	if a.exhausted {
		return nil, io.EOF
	}

	batch := make([]domain.CompositeRecord, 0, batchSize)
	for len(batch) < batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := a.next()
		if errors.Is(err, io.EOF) {
			a.exhausted = true
			if len(batch) > 0 {
				return batch, nil
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		batch = append(batch, rec)
	}
	return batch, nil
}

// Headers returns every header block seen so far, in source order. The
// validator reads the declared counts from here after the stream is drained.
func (a *Assembler) Headers() []domain.HeaderRecord {
	return a.headers
}

// next advances the cursor to the next composite record. Inside a declared
// run every line must be a well-formed data line; between runs, lines are
// header candidates and anything else is skipped defensively.
func (a *Assembler) next() (domain.CompositeRecord, error) {
	for {
		if a.remaining > 0 {
			return a.nextDataLine()
		}

		line, ok := a.scan()
		if !ok {
			if err := a.sc.Err(); err != nil {
				return domain.CompositeRecord{}, fmt.Errorf("read input: %w", err)
			}
			return domain.CompositeRecord{}, io.EOF
		}

		hdr, err := domain.ParseHeaderLine(line, a.lineNo)
		if err == nil && hdr.Year >= minPlausibleYear && hdr.Year <= maxPlausibleYear {
			a.current = hdr
			a.remaining = hdr.DeclaredEntries
			a.headers = append(a.headers, hdr)
			a.metrics.HeadersParsed.Inc()
			continue
		}

		// Defensive recovery: blank lines or malformed trailing content do
		// not abort the run.
		if strings.TrimSpace(line) != "" {
			a.logger.Warn("skipping unrecognized line", "line", a.lineNo)
		}
		a.metrics.LinesSkipped.Inc()
	}
}

func (a *Assembler) nextDataLine() (domain.CompositeRecord, error) {
	line, ok := a.scan()
	if !ok {
		if err := a.sc.Err(); err != nil {
			return domain.CompositeRecord{}, fmt.Errorf("read input: %w", err)
		}
		return domain.CompositeRecord{}, &domain.TruncatedStormError{
			Line:     a.current.Line,
			Storm:    a.current.UniqueID(),
			Declared: a.current.DeclaredEntries,
			Got:      a.current.DeclaredEntries - a.remaining,
		}
	}

	point, err := domain.ParseDataLine(line, a.lineNo)
	if err != nil {
		return domain.CompositeRecord{}, a.withStorm(err)
	}

	lat, err := domain.ConvertCoordinate(point.LatMagnitude, point.LatHemisphere, a.lineNo)
	if err != nil {
		return domain.CompositeRecord{}, a.withStorm(err)
	}
	lon, err := domain.ConvertCoordinate(point.LonMagnitude, point.LonHemisphere, a.lineNo)
	if err != nil {
		return domain.CompositeRecord{}, a.withStorm(err)
	}

	a.remaining--
	a.metrics.RecordsAssembled.Inc()
	return domain.CompositeRecord{
		Header:    a.current,
		Point:     point,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// withStorm stamps the current storm key onto data-line errors for context.
func (a *Assembler) withStorm(err error) error {
	var mde *domain.MalformedDataLineError
	if errors.As(err, &mde) && mde.Storm == "" {
		mde.Storm = a.current.UniqueID()
	}
	return err
}

func (a *Assembler) scan() (string, bool) {
	if !a.sc.Scan() {
		return "", false
	}
	a.lineNo++
	a.metrics.LinesScanned.Inc()
	return a.sc.Text(), true
}

package domain

import (
	"fmt"
	"time"
)

// StormIdentity is the tuple identifying one header block. Two blocks of the
// same physical storm may differ only in Year when the storm crosses a
// calendar-year boundary.
type StormIdentity struct {
	Basin         string
	CycloneNumber string
	Year          int
	Name          string
}

// UniqueID returns the storm key: year, basin, cyclone number concatenated,
// e.g. "1851AL01".
func (id StormIdentity) UniqueID() string {
	return fmt.Sprintf("%04d%s%s", id.Year, id.Basin, id.CycloneNumber)
}

func (id StormIdentity) String() string {
	return fmt.Sprintf("%s (%s)", id.UniqueID(), id.Name)
}

// HeaderRecord is one parsed header line. It is immutable and scoped to the
// run of data lines it precedes.
type HeaderRecord struct {
	StormIdentity
	DeclaredEntries int
	Line            int // 1-based line number in the source file
}

// RawTrackPoint holds every data-line field as the extracted, whitespace-
// trimmed substring, before any type coercion. Sentinels like "-999" are
// preserved verbatim here; mapping them to missing values is the normalizer's
// job.
type RawTrackPoint struct {
	Year   string
	Month  string
	Day    string
	Hour   string
	Minute string

	RecordID string // single-character record identifier (L=landfall, etc.)
	Status   string // two-letter system status code

	LatMagnitude  string
	LatHemisphere byte
	LonMagnitude  string
	LonHemisphere byte

	MaxWind     string
	MinPressure string

	// WindRadii holds the twelve quadrant radii in source order:
	// 34kt NE, SE, SW, NW, then 50kt, then 64kt.
	WindRadii     [12]string
	MaxWindRadius string

	Line int
}

// CompositeRecord pairs one track point with its owning header, with the
// coordinates already converted to signed decimal degrees. This is what the
// assembler emits and the normalizer consumes.
type CompositeRecord struct {
	Header    HeaderRecord
	Point     RawTrackPoint
	Latitude  float64
	Longitude float64
}

// TrackPoint is the final, strongly typed observation row. Numeric fields
// that the source marks as missing are nil, not zero and not dropped.
type TrackPoint struct {
	UniqueID      string `json:"unique_id"`
	Basin         string `json:"basin"`
	CycloneNumber string `json:"cyclone_number"`
	Name          string `json:"name"`

	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`

	Timestamp time.Time `json:"timestamp"`

	RecordID string `json:"record_id,omitempty"`
	Status   Status `json:"status"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	MaxWind     *int `json:"max_wind"`
	MinPressure *int `json:"min_pressure"`

	Radii34NE *int `json:"radii_34_ne"`
	Radii34SE *int `json:"radii_34_se"`
	Radii34SW *int `json:"radii_34_sw"`
	Radii34NW *int `json:"radii_34_nw"`
	Radii50NE *int `json:"radii_50_ne"`
	Radii50SE *int `json:"radii_50_se"`
	Radii50SW *int `json:"radii_50_sw"`
	Radii50NW *int `json:"radii_50_nw"`
	Radii64NE *int `json:"radii_64_ne"`
	Radii64SE *int `json:"radii_64_se"`
	Radii64SW *int `json:"radii_64_sw"`
	Radii64NW *int `json:"radii_64_nw"`

	MaxWindRadius *int `json:"max_wind_radius"`

	IngestedAt time.Time `json:"ingested_at"`
}

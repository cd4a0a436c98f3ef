package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatHeaderLine renders a header line in the fixed-width HURDAT2 layout.
// Inverse of ParseHeaderLine for in-format values: names are truncated to the
// ten-character name field, and an entry count of 1000 or more overflows its
// three-character slice and will not round-trip.
func FormatHeaderLine(h HeaderRecord) string {
	name := h.Name
	if limit := hdrNameEnd - hdrNameStart; len(name) > limit {
		name = name[:limit]
	}
	return fmt.Sprintf("%2s%2s%04d,%19s,%7d,",
		h.Basin, h.CycloneNumber, h.Year, name, h.DeclaredEntries)
}

// FormatDataLine renders one observation in the fixed-width HURDAT2 layout.
// Missing numerics are written as sentinels: -99 in the three-column wind
// field, -999 everywhere else, so each sentinel fits its slot and the line
// stays column-aligned. Inverse of ParseDataLine for well-formed values.
func FormatDataLine(tp TrackPoint) string {
	latMag, latHem := splitCoordinate(tp.Latitude, 'N', 'S')
	lonMag, lonHem := splitCoordinate(tp.Longitude, 'E', 'W')

	var b strings.Builder
	fmt.Fprintf(&b, "%04d%02d%02d, %02d%02d, %1s, %2s, %4.1f%c, %5.1f%c, %3s, %4s,",
		tp.Year, tp.Month, tp.Day, tp.Hour, tp.Minute,
		tp.RecordID, tp.Status,
		latMag, latHem, lonMag, lonHem,
		windOrSentinel(tp.MaxWind), intOrSentinel(tp.MinPressure))

	radii := [12]*int{
		tp.Radii34NE, tp.Radii34SE, tp.Radii34SW, tp.Radii34NW,
		tp.Radii50NE, tp.Radii50SE, tp.Radii50SW, tp.Radii50NW,
		tp.Radii64NE, tp.Radii64SE, tp.Radii64SW, tp.Radii64NW,
	}
	for _, r := range radii {
		fmt.Fprintf(&b, " %4s,", intOrSentinel(r))
	}
	fmt.Fprintf(&b, " %4s,", intOrSentinel(tp.MaxWindRadius))
	return b.String()
}

func splitCoordinate(value float64, positive, negative byte) (float64, byte) {
	if value < 0 {
		return math.Abs(value), negative
	}
	return value, positive
}

func intOrSentinel(p *int) string {
	if p == nil {
		return sentinel
	}
	return strconv.Itoa(*p)
}

func windOrSentinel(p *int) string {
	if p == nil {
		return windSentinel
	}
	return strconv.Itoa(*p)
}

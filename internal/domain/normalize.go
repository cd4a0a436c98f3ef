package domain

import (
	"fmt"
	"strconv"
	"time"
)

// HURDAT2 markers for an unmeasured value. The wind field is only three
// columns wide, so it carries the shorter form.
const (
	sentinel     = "-999"
	windSentinel = "-99"
)

// NormalizeOptions controls how the normalizer treats values that are
// well-formed structurally but semantically wrong.
type NormalizeOptions struct {
	// Lenient downgrades unknown status codes and impossible calendar dates
	// from errors to missing values (StatusMissing, zero Timestamp). The
	// integer date parts are kept either way. Structural failures such as a
	// non-numeric year remain fatal.
	Lenient bool
}

// Normalize coerces a composite record into the final typed TrackPoint:
// integer date/time parts, status enum, composed UTC timestamp, sentinel-free
// numeric fields, and the storm key. The key year comes from the data line,
// not the header, so cross-year storms key their points to the year each
// observation fell in.
func Normalize(rec CompositeRecord, opts NormalizeOptions) (TrackPoint, error) {
	storm := rec.Header.UniqueID()
	line := rec.Point.Line

	year, err := requiredInt(rec.Point.Year, "year", line, storm)
	if err != nil {
		return TrackPoint{}, err
	}
	month, err := requiredInt(rec.Point.Month, "month", line, storm)
	if err != nil {
		return TrackPoint{}, err
	}
	day, err := requiredInt(rec.Point.Day, "day", line, storm)
	if err != nil {
		return TrackPoint{}, err
	}
	hour, err := requiredInt(rec.Point.Hour, "hour", line, storm)
	if err != nil {
		return TrackPoint{}, err
	}
	minute, err := requiredInt(rec.Point.Minute, "minute", line, storm)
	if err != nil {
		return TrackPoint{}, err
	}

	status, err := ParseStatus(rec.Point.Status, line, storm)
	if err != nil && !opts.Lenient {
		return TrackPoint{}, err
	}

	timestamp, err := composeTimestamp(year, month, day, hour, minute, line, storm)
	if err != nil {
		if !opts.Lenient {
			return TrackPoint{}, err
		}
		timestamp = time.Time{}
	}

	tp := TrackPoint{
		UniqueID:      fmt.Sprintf("%04d%s%s", year, rec.Header.Basin, rec.Header.CycloneNumber),
		Basin:         rec.Header.Basin,
		CycloneNumber: rec.Header.CycloneNumber,
		Name:          rec.Header.Name,
		Year:          year,
		Month:         month,
		Day:           day,
		Hour:          hour,
		Minute:        minute,
		Timestamp:     timestamp,
		RecordID:      rec.Point.RecordID,
		Status:        status,
		Latitude:      rec.Latitude,
		Longitude:     rec.Longitude,
		MaxWind:       optionalInt(rec.Point.MaxWind),
		MinPressure:   optionalInt(rec.Point.MinPressure),
		MaxWindRadius: optionalInt(rec.Point.MaxWindRadius),
		IngestedAt:    clock.Now().UTC(),
	}

	radii := [12]**int{
		&tp.Radii34NE, &tp.Radii34SE, &tp.Radii34SW, &tp.Radii34NW,
		&tp.Radii50NE, &tp.Radii50SE, &tp.Radii50SW, &tp.Radii50NW,
		&tp.Radii64NE, &tp.Radii64SE, &tp.Radii64SW, &tp.Radii64NW,
	}
	for i, dst := range radii {
		*dst = optionalInt(rec.Point.WindRadii[i])
	}

	return tp, nil
}

// requiredInt parses a substring that must be an integer for the row to make
// sense at all. Failure means the offset table missed, so it is structural.
func requiredInt(s, name string, line int, storm string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &MalformedDataLineError{
			Line:   line,
			Storm:  storm,
			Reason: fmt.Sprintf("%s %q is not an integer", name, s),
		}
	}
	return v, nil
}

// optionalInt coerces a numeric substring, mapping blanks, the sentinels,
// and non-numeric text to an explicit missing marker.
func optionalInt(s string) *int {
	if s == "" || s == sentinel || s == windSentinel {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// composeTimestamp builds a UTC timestamp and rejects impossible calendar
// dates. time.Date normalizes out-of-range parts (Feb 30 becomes Mar 2), so
// the components are checked against the constructed value.
func composeTimestamp(year, month, day, hour, minute, line int, storm string) (time.Time, error) {
	invalid := func() *InvalidDateError {
		return &InvalidDateError{Line: line, Storm: storm, Year: year, Month: month, Day: day, Hour: hour, Min: minute}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, invalid()
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, invalid()
	}
	return t, nil
}

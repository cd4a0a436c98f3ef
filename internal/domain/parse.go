package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Header line field offsets. HURDAT2 is ASCII, so byte indexing is safe.
const (
	hdrBasinStart, hdrBasinEnd   = 0, 2
	hdrNumberStart, hdrNumberEnd = 2, 4
	hdrYearStart, hdrYearEnd     = 4, 8
	hdrNameStart, hdrNameEnd     = 18, 28
	hdrCountStart, hdrCountEnd   = 33, 36

	headerMinLen = hdrCountEnd
)

// Data line field offsets.
const (
	datYearStart, datYearEnd     = 0, 4
	datMonthStart, datMonthEnd   = 4, 6
	datDayStart, datDayEnd       = 6, 8
	datHourStart, datHourEnd     = 10, 12
	datMinuteStart, datMinuteEnd = 12, 14
	datRecordID                  = 16
	datStatusStart, datStatusEnd = 19, 21
	datLatStart, datLatEnd       = 23, 27
	datLatHemisphere             = 27
	datLonStart, datLonEnd       = 30, 35
	datLonHemisphere             = 35
	datWindStart, datWindEnd     = 38, 41
	datPressStart, datPressEnd   = 43, 47

	datRadiiStart  = 49
	datRadiiWidth  = 4
	datRadiiStride = 6

	datRMWStart, datRMWEnd = 121, 125

	dataMinLen = datRMWEnd
)

// ParseHeaderLine extracts storm identity and declared entry count from a
// fixed-offset header line. Pure; the returned error is always a
// *MalformedHeaderError.
func ParseHeaderLine(line string, lineNo int) (HeaderRecord, error) {
	if len(line) < headerMinLen {
		return HeaderRecord{}, &MalformedHeaderError{
			Line:   lineNo,
			Reason: fmt.Sprintf("length %d, need at least %d", len(line), headerMinLen),
		}
	}

	year, err := strconv.Atoi(strings.TrimSpace(line[hdrYearStart:hdrYearEnd]))
	if err != nil {
		return HeaderRecord{}, &MalformedHeaderError{
			Line:   lineNo,
			Reason: fmt.Sprintf("year %q is not an integer", strings.TrimSpace(line[hdrYearStart:hdrYearEnd])),
		}
	}

	countStr := strings.TrimSpace(line[hdrCountStart:hdrCountEnd])
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return HeaderRecord{}, &MalformedHeaderError{
			Line:   lineNo,
			Reason: fmt.Sprintf("entry count %q is not a non-negative integer", countStr),
		}
	}

	return HeaderRecord{
		StormIdentity: StormIdentity{
			Basin:         strings.TrimSpace(line[hdrBasinStart:hdrBasinEnd]),
			CycloneNumber: strings.TrimSpace(line[hdrNumberStart:hdrNumberEnd]),
			Year:          year,
			Name:          strings.TrimSpace(line[hdrNameStart:hdrNameEnd]),
		},
		DeclaredEntries: count,
		Line:            lineNo,
	}, nil
}

// ParseDataLine extracts every per-observation field from a fixed-offset data
// line. Fields are trimmed but otherwise untouched: sentinels and blanks pass
// through for the normalizer to interpret. Pure.
func ParseDataLine(line string, lineNo int) (RawTrackPoint, error) {
	if len(line) < dataMinLen {
		return RawTrackPoint{}, &MalformedDataLineError{
			Line:   lineNo,
			Reason: fmt.Sprintf("length %d, need at least %d", len(line), dataMinLen),
		}
	}

	field := func(start, end int) string { return strings.TrimSpace(line[start:end]) }

	p := RawTrackPoint{
		Year:          field(datYearStart, datYearEnd),
		Month:         field(datMonthStart, datMonthEnd),
		Day:           field(datDayStart, datDayEnd),
		Hour:          field(datHourStart, datHourEnd),
		Minute:        field(datMinuteStart, datMinuteEnd),
		RecordID:      field(datRecordID, datRecordID+1),
		Status:        field(datStatusStart, datStatusEnd),
		LatMagnitude:  field(datLatStart, datLatEnd),
		LatHemisphere: line[datLatHemisphere],
		LonMagnitude:  field(datLonStart, datLonEnd),
		LonHemisphere: line[datLonHemisphere],
		MaxWind:       field(datWindStart, datWindEnd),
		MinPressure:   field(datPressStart, datPressEnd),
		MaxWindRadius: field(datRMWStart, datRMWEnd),
		Line:          lineNo,
	}
	for i := range p.WindRadii {
		start := datRadiiStart + i*datRadiiStride
		p.WindRadii[i] = field(start, start+datRadiiWidth)
	}
	return p, nil
}

// ConvertCoordinate turns a magnitude string and hemisphere character into a
// signed decimal-degree value: positive for N/E, negative for S/W. A
// magnitude without a decimal point is in tenths of a degree ("283" → 28.3).
// Pure.
func ConvertCoordinate(magnitude string, hemisphere byte, lineNo int) (float64, error) {
	magnitude = strings.TrimSpace(magnitude)

	var value float64
	if strings.Contains(magnitude, ".") {
		f, err := strconv.ParseFloat(magnitude, 64)
		if err != nil {
			return 0, &MalformedDataLineError{
				Line:   lineNo,
				Reason: fmt.Sprintf("coordinate magnitude %q is not numeric", magnitude),
			}
		}
		value = f
	} else {
		n, err := strconv.Atoi(magnitude)
		if err != nil {
			return 0, &MalformedDataLineError{
				Line:   lineNo,
				Reason: fmt.Sprintf("coordinate magnitude %q is not numeric", magnitude),
			}
		}
		value = float64(n) / 10
	}

	switch hemisphere {
	case 'N', 'E':
		return value, nil
	case 'S', 'W':
		return -value, nil
	default:
		return 0, &InvalidHemisphereError{Line: lineNo, Hemisphere: hemisphere}
	}
}

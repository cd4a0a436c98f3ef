package domain

import "fmt"

// MalformedHeaderError reports a line that was handed to the header parser
// but does not satisfy the header layout. During assembly this is also the
// signal that a line is not a header at all; it only aborts a run when the
// assembler is mid-storm.
type MalformedHeaderError struct {
	Line   int // 1-based line number in the source file
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header line %d: %s", e.Line, e.Reason)
}

// MalformedDataLineError reports a data line that violates the fixed-width
// layout: too short to cover the declared offsets, or non-numeric text in a
// position that must be numeric. It indicates a corrupt file or a wrong
// offset table, so it is always fatal.
type MalformedDataLineError struct {
	Line   int
	Storm  string // unique storm key when known
	Reason string
}

func (e *MalformedDataLineError) Error() string {
	if e.Storm == "" {
		return fmt.Sprintf("malformed data line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed data line %d (storm %s): %s", e.Line, e.Storm, e.Reason)
}

// TruncatedStormError reports end-of-input before a header's declared run of
// data lines was consumed.
type TruncatedStormError struct {
	Line     int // line number of the owning header
	Storm    string
	Declared int
	Got      int
}

func (e *TruncatedStormError) Error() string {
	return fmt.Sprintf("storm %s (header line %d) declares %d entries but input ended after %d",
		e.Storm, e.Line, e.Declared, e.Got)
}

// InvalidHemisphereError reports a hemisphere character outside N/S/E/W.
type InvalidHemisphereError struct {
	Line       int
	Hemisphere byte
}

func (e *InvalidHemisphereError) Error() string {
	return fmt.Sprintf("line %d: invalid hemisphere %q, want N, S, E or W", e.Line, string(e.Hemisphere))
}

// UnknownStatusError reports a status code outside the closed HURDAT2 set.
type UnknownStatusError struct {
	Line  int
	Storm string
	Code  string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("line %d (storm %s): unknown status code %q", e.Line, e.Storm, e.Code)
}

// InvalidDateError reports date/time parts that do not compose into a real
// calendar timestamp, e.g. February 30 or hour 25.
type InvalidDateError struct {
	Line  int
	Storm string
	Year  int
	Month int
	Day   int
	Hour  int
	Min   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("line %d (storm %s): %04d-%02d-%02d %02d:%02d is not a valid date",
		e.Line, e.Storm, e.Year, e.Month, e.Day, e.Hour, e.Min)
}

// Package domain models National Hurricane Center (NHC) HURDAT2 best-track data.
//
// # Data Source
//
// HURDAT2 is the NHC's post-storm reanalysis ("best track") dataset, published
// as a single fixed-column-width text file per basin at
// https://www.nhc.noaa.gov/data/#hurdat. The file alternates between header
// lines, each introducing one storm, and the run of data lines the header
// declares.
//
// # Line Layout
//
// Header lines carry the storm identity and the declared number of data lines
// that follow (character columns are 0-indexed, start inclusive, end exclusive):
//
//	AL011851,            UNNAMED,     14,
//	basin 0:2  cyclone number 2:4  year 4:8  name 18:28  entry count 33:36
//
// Data lines carry one timestamped observation each:
//
//	18510625, 0000,  , HU, 28.0N,  94.8W,  80, -999, -999, ...
//	date 0:8  time 10:14  record id 16:17  status 19:21
//	latitude 23:28  longitude 30:36  wind 38:41  pressure 43:47
//	wind radii 49:119 (twelve 4-char fields at stride 6)  RMW 121:125
//
// Lines are recognized by shape, not by a basin prefix: any line that parses
// under the header layout with a plausible year is a header. This keeps the
// parser basin-agnostic even though the reference file covers only the
// Atlantic.
//
// # Coordinates
//
// Latitude and longitude are unsigned magnitudes tagged with a hemisphere
// letter: 28.0N, 94.8W. Conversion to signed decimal degrees makes N and E
// positive, S and W negative. Magnitudes written without a decimal point are
// tenths of a degree ("283" means 28.3).
//
// # Status Codes
//
// The two-letter system status is a closed set:
//
//	TD tropical depression      TS tropical storm
//	HU hurricane                EX extratropical cyclone
//	SD subtropical depression   SS subtropical storm
//	LO low                      WV tropical wave
//	DB disturbance
//
// Any other code fails normalization by default; see [UnknownStatusError].
//
// # Missing Values
//
// -999 is the HURDAT2 sentinel for an unmeasured value (-99 in the
// three-column wind field); early records also leave fields blank. All of
// these normalize to an explicit missing marker (nil pointer, SQL NULL
// downstream), never to a literal negative number and never by dropping the
// row.
//
// # Storm Keys
//
// unique_id is the observation year concatenated with the basin and cyclone
// number, e.g. "1851AL01". The year comes from each data line rather than the
// header, so a storm that crosses a calendar-year boundary contributes points
// to two keys. Those storms legitimately fail the per-header entry-count check
// while satisfying it in aggregate; see the pipeline validator.
package domain

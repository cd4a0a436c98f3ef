package domain

// Status is a HURDAT2 two-letter system status.
type Status string

const (
	StatusTropicalDepression    Status = "TD"
	StatusTropicalStorm         Status = "TS"
	StatusHurricane             Status = "HU"
	StatusExtratropical         Status = "EX"
	StatusSubtropicalDepression Status = "SD"
	StatusSubtropicalStorm      Status = "SS"
	StatusLow                   Status = "LO"
	StatusTropicalWave          Status = "WV"
	StatusDisturbance           Status = "DB"

	// StatusMissing marks a status masked under lenient normalization.
	StatusMissing Status = ""
)

var knownStatuses = map[Status]struct{}{
	StatusTropicalDepression:    {},
	StatusTropicalStorm:         {},
	StatusHurricane:             {},
	StatusExtratropical:         {},
	StatusSubtropicalDepression: {},
	StatusSubtropicalStorm:      {},
	StatusLow:                   {},
	StatusTropicalWave:          {},
	StatusDisturbance:           {},
}

// ParseStatus maps a status substring onto the closed status set. The mapping
// is total over the nine known codes and rejects everything else.
func ParseStatus(code string, line int, storm string) (Status, error) {
	s := Status(code)
	if _, ok := knownStatuses[s]; !ok {
		return StatusMissing, &UnknownStatusError{Line: line, Storm: storm, Code: code}
	}
	return s, nil
}

package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests and cmd/genmock can freeze
// ingestion timestamps. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for IngestedAt. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

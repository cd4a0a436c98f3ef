package pipeline

import (
	"sort"
	"strconv"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
)

// CountCheck is one storm identity's declared-vs-observed entry count
// comparison.
type CountCheck struct {
	Identity domain.StormIdentity
	Declared int
	Observed int

	// Expected is true when the mismatch is explained by a cross-year split
	// rather than data loss.
	Expected bool
}

// Validator cross-checks, per storm identity, the number of assembled track
// points against the declared entry counts. Mismatches are reported, never
// fatal; the caller decides what to do with unexpected ones.
type Validator struct {
	declared map[domain.StormIdentity]int
	observed map[domain.StormIdentity]int
}

func NewValidator() *Validator {
	return &Validator{
		declared: make(map[domain.StormIdentity]int),
		observed: make(map[domain.StormIdentity]int),
	}
}

// ObserveHeaders records declared entry counts. Split blocks sharing one
// identity accumulate.
func (v *Validator) ObserveHeaders(headers []domain.HeaderRecord) {
	for _, h := range headers {
		v.declared[h.StormIdentity] += h.DeclaredEntries
	}
}

// ObserveRecord counts one assembled record against its storm identity, with
// the year taken from the track point's own date field. Points of a storm
// that crosses a calendar-year boundary therefore split across two
// identities, which is what makes the cross-year mismatch detectable.
func (v *Validator) ObserveRecord(rec domain.CompositeRecord) {
	id := rec.Header.StormIdentity
	if year, err := strconv.Atoi(rec.Point.Year); err == nil {
		id.Year = year
	}
	v.observed[id]++
}

// Report returns every identity whose observed count differs from its
// declared count, ordered by year, basin, cyclone number. A mismatch is
// Expected when a sibling identity in an adjacent year also mismatches and
// the two aggregate to the combined declared count: the storm straddled a
// calendar-year boundary and satisfies the invariant across both blocks.
func (v *Validator) Report() []CountCheck {
	ids := make(map[domain.StormIdentity]struct{}, len(v.declared))
	for id := range v.declared {
		ids[id] = struct{}{}
	}
	for id := range v.observed {
		ids[id] = struct{}{}
	}

	var checks []CountCheck
	for id := range ids {
		declared, observed := v.declared[id], v.observed[id]
		if declared == observed {
			continue
		}
		checks = append(checks, CountCheck{
			Identity: id,
			Declared: declared,
			Observed: observed,
			Expected: v.crossYearSplit(id),
		})
	}

	sort.Slice(checks, func(i, j int) bool {
		a, b := checks[i].Identity, checks[j].Identity
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Basin != b.Basin {
			return a.Basin < b.Basin
		}
		return a.CycloneNumber < b.CycloneNumber
	})
	return checks
}

// crossYearSplit reports whether id's mismatch pairs with a complementary
// mismatch in the adjacent calendar year.
func (v *Validator) crossYearSplit(id domain.StormIdentity) bool {
	for _, delta := range []int{-1, 1} {
		sibling := id
		sibling.Year += delta

		sd, so := v.declared[sibling], v.observed[sibling]
		if sd == 0 && so == 0 {
			continue
		}
		if sd != so && v.declared[id]+sd == v.observed[id]+so {
			return true
		}
	}
	return false
}

// HasUnexpected reports whether any check in the slice is an unexplained
// mismatch.
func HasUnexpected(checks []CountCheck) bool {
	for _, c := range checks {
		if !c.Expected {
			return true
		}
	}
	return false
}

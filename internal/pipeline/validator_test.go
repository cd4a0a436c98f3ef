package pipeline_test

import (
	"testing"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_MatchingCounts(t *testing.T) {
	hdr := headerRecord("AL", "01", 1851, "UNNAMED", 2)

	v := pipeline.NewValidator()
	v.ObserveRecord(compositeFor(hdr, 1851))
	v.ObserveRecord(compositeFor(hdr, 1851))
	v.ObserveHeaders([]domain.HeaderRecord{hdr})

	assert.Empty(t, v.Report())
}

func TestValidator_UnexpectedMismatch(t *testing.T) {
	hdr := headerRecord("AL", "01", 1851, "UNNAMED", 5)

	v := pipeline.NewValidator()
	for i := 0; i < 4; i++ {
		v.ObserveRecord(compositeFor(hdr, 1851))
	}
	v.ObserveHeaders([]domain.HeaderRecord{hdr})

	report := v.Report()
	require.Len(t, report, 1)
	assert.Equal(t, 5, report[0].Declared)
	assert.Equal(t, 4, report[0].Observed)
	assert.False(t, report[0].Expected)
	assert.True(t, pipeline.HasUnexpected(report))
}

func TestValidator_CrossYearSplitIsExpected(t *testing.T) {
	// One header block, declared 3, with the last observation falling on
	// January 1 of the following year.
	hdr := headerRecord("AL", "12", 1954, "ALICE", 3)

	v := pipeline.NewValidator()
	v.ObserveRecord(compositeFor(hdr, 1954))
	v.ObserveRecord(compositeFor(hdr, 1954))
	v.ObserveRecord(compositeFor(hdr, 1955))
	v.ObserveHeaders([]domain.HeaderRecord{hdr})

	report := v.Report()
	require.Len(t, report, 2)
	for _, c := range report {
		assert.Truef(t, c.Expected, "identity %s should be an expected mismatch", c.Identity.UniqueID())
	}
	assert.False(t, pipeline.HasUnexpected(report))

	// The aggregate across the split satisfies the invariant.
	totalDeclared, totalObserved := 0, 0
	for _, c := range report {
		totalDeclared += c.Declared
		totalObserved += c.Observed
	}
	assert.Equal(t, totalDeclared, totalObserved)
}

func TestValidator_SplitHeaderBlocksAggregate(t *testing.T) {
	// The storm appears as two consecutive header blocks, one per calendar
	// year, and its points spill across the boundary.
	block1954 := headerRecord("AL", "12", 1954, "ALICE", 3)
	block1955 := headerRecord("AL", "12", 1955, "ALICE", 2)

	v := pipeline.NewValidator()
	v.ObserveRecord(compositeFor(block1954, 1954))
	v.ObserveRecord(compositeFor(block1954, 1954))
	v.ObserveRecord(compositeFor(block1954, 1955)) // Dec 31 → Jan 1 spill
	v.ObserveRecord(compositeFor(block1955, 1955))
	v.ObserveRecord(compositeFor(block1955, 1955))
	v.ObserveHeaders([]domain.HeaderRecord{block1954, block1955})

	report := v.Report()
	require.Len(t, report, 2)

	assert.Equal(t, 1954, report[0].Identity.Year)
	assert.Equal(t, 3, report[0].Declared)
	assert.Equal(t, 2, report[0].Observed)
	assert.True(t, report[0].Expected)

	assert.Equal(t, 1955, report[1].Identity.Year)
	assert.Equal(t, 2, report[1].Declared)
	assert.Equal(t, 3, report[1].Observed)
	assert.True(t, report[1].Expected)
}

func TestValidator_AdjacentStormsDoNotMaskRealLoss(t *testing.T) {
	// Two different storms in adjacent years: a lost row in one must not be
	// explained away by the other, because the aggregate no longer matches.
	first := headerRecord("AL", "03", 1900, "UNNAMED", 2)
	second := headerRecord("AL", "03", 1901, "UNNAMED", 2)

	v := pipeline.NewValidator()
	v.ObserveRecord(compositeFor(first, 1900)) // one row missing
	v.ObserveRecord(compositeFor(second, 1901))
	v.ObserveRecord(compositeFor(second, 1901))
	v.ObserveHeaders([]domain.HeaderRecord{first, second})

	report := v.Report()
	require.Len(t, report, 1)
	assert.Equal(t, 1900, report[0].Identity.Year)
	assert.False(t, report[0].Expected)
}

func TestValidator_DifferentNamesAreDifferentIdentities(t *testing.T) {
	a := headerRecord("AL", "05", 1932, "UNNAMED", 1)
	b := headerRecord("AL", "05", 1933, "OTHER", 1)

	v := pipeline.NewValidator()
	v.ObserveRecord(compositeFor(a, 1932))
	v.ObserveHeaders([]domain.HeaderRecord{a, b})

	report := v.Report()
	require.Len(t, report, 1)
	assert.Equal(t, "OTHER", report[0].Identity.Name)
	assert.False(t, report[0].Expected)
}

package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() HeaderRecord {
	return HeaderRecord{
		StormIdentity: StormIdentity{
			Basin:         "AL",
			CycloneNumber: "01",
			Year:          1851,
			Name:          "UNNAMED",
		},
		DeclaredEntries: 14,
		Line:            1,
	}
}

func testComposite() CompositeRecord {
	return CompositeRecord{
		Header: testHeader(),
		Point: RawTrackPoint{
			Year: "1851", Month: "06", Day: "25",
			Hour: "00", Minute: "00",
			Status:      "HU",
			MaxWind:     "80",
			MinPressure: "-999",
			WindRadii: [12]string{
				"-999", "-999", "-999", "-999",
				"-999", "-999", "-999", "-999",
				"-999", "-999", "-999", "-999",
			},
			MaxWindRadius: "-999",
			Line:          2,
		},
		Latitude:  28.0,
		Longitude: -94.8,
	}
}

func TestNormalize(t *testing.T) {
	frozen := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	t.Run("early record", func(t *testing.T) {
		tp, err := Normalize(testComposite(), NormalizeOptions{})
		require.NoError(t, err)

		assert.Equal(t, "1851AL01", tp.UniqueID)
		assert.Equal(t, "AL", tp.Basin)
		assert.Equal(t, "01", tp.CycloneNumber)
		assert.Equal(t, "UNNAMED", tp.Name)
		assert.Equal(t, 1851, tp.Year)
		assert.Equal(t, 6, tp.Month)
		assert.Equal(t, 25, tp.Day)
		assert.Equal(t, 0, tp.Hour)
		assert.Equal(t, 0, tp.Minute)
		assert.Equal(t, time.Date(1851, time.June, 25, 0, 0, 0, 0, time.UTC), tp.Timestamp)
		assert.Equal(t, StatusHurricane, tp.Status)
		assert.InDelta(t, 28.0, tp.Latitude, 1e-9)
		assert.InDelta(t, -94.8, tp.Longitude, 1e-9)
		assert.Equal(t, frozen, tp.IngestedAt)

		require.NotNil(t, tp.MaxWind)
		assert.Equal(t, 80, *tp.MaxWind)

		// Sentinels become explicit missing markers, not literal -999s.
		assert.Nil(t, tp.MinPressure)
		assert.Nil(t, tp.Radii34NE)
		assert.Nil(t, tp.Radii64NW)
		assert.Nil(t, tp.MaxWindRadius)
	})

	t.Run("key year comes from the data line", func(t *testing.T) {
		rec := testComposite()
		rec.Point.Year = "1852"
		rec.Point.Month = "01"
		rec.Point.Day = "01"

		tp, err := Normalize(rec, NormalizeOptions{})
		require.NoError(t, err)
		assert.Equal(t, "1852AL01", tp.UniqueID)
	})

	t.Run("unknown status", func(t *testing.T) {
		rec := testComposite()
		rec.Point.Status = "XX"

		_, err := Normalize(rec, NormalizeOptions{})

		var use *UnknownStatusError
		require.ErrorAs(t, err, &use)
		assert.Equal(t, "XX", use.Code)
		assert.Equal(t, 2, use.Line)
		assert.Equal(t, "1851AL01", use.Storm)
	})

	t.Run("unknown status lenient", func(t *testing.T) {
		rec := testComposite()
		rec.Point.Status = "XX"

		tp, err := Normalize(rec, NormalizeOptions{Lenient: true})
		require.NoError(t, err)
		assert.Equal(t, StatusMissing, tp.Status)
	})

	t.Run("impossible calendar date", func(t *testing.T) {
		rec := testComposite()
		rec.Point.Month = "02"
		rec.Point.Day = "30"

		_, err := Normalize(rec, NormalizeOptions{})

		var ide *InvalidDateError
		require.ErrorAs(t, err, &ide)
		assert.Equal(t, 2, ide.Month)
		assert.Equal(t, 30, ide.Day)
	})

	t.Run("impossible calendar date lenient", func(t *testing.T) {
		rec := testComposite()
		rec.Point.Month = "02"
		rec.Point.Day = "30"

		tp, err := Normalize(rec, NormalizeOptions{Lenient: true})
		require.NoError(t, err)
		assert.True(t, tp.Timestamp.IsZero())
		assert.Equal(t, 2, tp.Month)
		assert.Equal(t, 30, tp.Day)
	})

	t.Run("hour out of range", func(t *testing.T) {
		rec := testComposite()
		rec.Point.Hour = "25"

		_, err := Normalize(rec, NormalizeOptions{})

		var ide *InvalidDateError
		require.ErrorAs(t, err, &ide)
	})

	t.Run("non-numeric year is structural even in lenient mode", func(t *testing.T) {
		rec := testComposite()
		rec.Point.Year = "18x1"

		_, err := Normalize(rec, NormalizeOptions{Lenient: true})

		var mde *MalformedDataLineError
		require.ErrorAs(t, err, &mde)
	})

	t.Run("wind sentinel is missing", func(t *testing.T) {
		rec := testComposite()
		rec.Point.MaxWind = "-99"

		tp, err := Normalize(rec, NormalizeOptions{})
		require.NoError(t, err)
		assert.Nil(t, tp.MaxWind)
	})

	t.Run("blank numeric fields are missing", func(t *testing.T) {
		rec := testComposite()
		rec.Point.MaxWind = ""

		tp, err := Normalize(rec, NormalizeOptions{})
		require.NoError(t, err)
		assert.Nil(t, tp.MaxWind)
	})
}

func TestParseStatus(t *testing.T) {
	known := []string{"TD", "TS", "HU", "EX", "SD", "SS", "LO", "WV", "DB"}
	for _, code := range known {
		t.Run(code, func(t *testing.T) {
			s, err := ParseStatus(code, 1, "1851AL01")
			require.NoError(t, err)
			assert.Equal(t, Status(code), s)
		})
	}

	for _, code := range []string{"XZ", "hu", "H", "", "HUR"} {
		t.Run("rejects "+code, func(t *testing.T) {
			_, err := ParseStatus(code, 1, "1851AL01")
			assert.Error(t, err)
		})
	}
}

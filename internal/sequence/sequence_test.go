package sequence

import (
	"testing"
	"time"

	"github.com/amityagov/gen/internal/parser"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.October, 17, 23, 45, 0, 0, time.Local)

func entries(t *testing.T, names ...string) []parser.Entry {
	t.Helper()
	out := make([]parser.Entry, 0, len(names))
	for _, n := range names {
		e, ok := parser.ParseName(n)
		require.True(t, ok, n)
		out = append(out, e)
	}
	return out
}

func TestNext_NoFiles(t *testing.T) {
	idx, err := Next(nil, today)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestNext_OnlyPastDates(t *testing.T) {
	idx, err := Next(entries(t, "2026101607 - a.sql", "2025010199 - b.sql"), today)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestNext_ContinuesTodaysSequence(t *testing.T) {
	// unsorted on purpose: the max index of the max day wins
	idx, err := Next(entries(t,
		"2026101704 - d.sql",
		"2026101609 - old.sql",
		"2026101711 - k.sql",
		"2026101702 - b.sql",
	), today)
	require.NoError(t, err)
	require.Equal(t, 12, idx)
}

func TestLast_ReportsToday(t *testing.T) {
	last, ok, err := Last(entries(t, "2026101703 - c.sql"), today)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, last)
}

func TestNext_FutureDate(t *testing.T) {
	_, err := Next(entries(t, "2026101701 - a.sql", "2026101801 - tomorrow.sql"), today)
	require.ErrorIs(t, err, ErrFutureDate)
	require.Contains(t, err.Error(), "20261018")
}

func TestNext_Exhausted(t *testing.T) {
	_, err := Next(entries(t, "2026101799 - last.sql"), today)
	require.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestDay_UsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2026, time.October, 17, 1, 0, 0, 0, loc) // still the 16th in UTC
	require.Equal(t, time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC), Day(late))
}

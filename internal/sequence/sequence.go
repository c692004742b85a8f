// Package sequence decides the two-digit index of the next migration of a day.
package sequence

import (
	"errors"
	"fmt"
	"time"

	"github.com/amityagov/gen/internal/parser"
)

// MaxIndex is the largest index that still fits in two digits.
const MaxIndex = 99

var (
	// ErrFutureDate means a migration is dated after today.
	ErrFutureDate = errors.New("found date in future")
	// ErrSequenceExhausted means today already has MaxIndex migrations.
	ErrSequenceExhausted = errors.New("sequence exhausted for today")
)

// Day truncates t to its calendar day, keeping t's location for Y/M/D.
// The result is in UTC so it compares with parser.Entry.Date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Last returns the highest index used on today's date.
// ok is false when the newest migration is from an earlier day or no migration exists.
func Last(entries []parser.Entry, today time.Time) (int, bool, error) {
	if len(entries) == 0 {
		return 0, false, nil
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Date.After(latest.Date) || e.Date.Equal(latest.Date) && e.Index > latest.Index {
			latest = e
		}
	}

	day := Day(today)
	switch {
	case latest.Date.After(day):
		return 0, false, fmt.Errorf("%w: %s (%s)", ErrFutureDate, latest.Day(), latest.Name)
	case latest.Date.Equal(day):
		return latest.Index, true, nil
	}
	return 0, false, nil
}

// Next returns the index for a new migration created today.
func Next(entries []parser.Entry, today time.Time) (int, error) {
	last, ok, err := Last(entries, today)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	if last >= MaxIndex {
		return 0, fmt.Errorf("%w: %s already at %02d", ErrSequenceExhausted, Day(today).Format("20060102"), last)
	}
	return last + 1, nil
}

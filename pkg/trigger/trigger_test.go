package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday (weekday 2).
var monday = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func clock(hour, min int) time.Time {
	return time.Date(2000, 1, 1, hour, min, 45, 0, time.UTC)
}

func TestNextLaterSameDay(t *testing.T) {
	got, err := Next(clock(15, 30), 2, monday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC), got)
}

func TestNextEarlierSameDayRollsToNextWeek(t *testing.T) {
	got, err := Next(clock(7, 0), 2, monday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC), got)
}

func TestNextExactMatchReturnsFollowingOccurrence(t *testing.T) {
	// Reference sits exactly on the candidate instant; the match must be the
	// next one, never the reference itself.
	got, err := Next(clock(12, 0), 2, monday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC), got)
	assert.True(t, got.After(monday))

	// Idempotence: asking again at the same reference gives the same answer.
	again, err := Next(clock(12, 0), 2, monday)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestNextOtherWeekday(t *testing.T) {
	// Friday (6) from a Monday reference.
	got, err := Next(clock(6, 15), 6, monday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 6, 6, 15, 0, 0, time.UTC), got)
}

func TestNextWeekRollover(t *testing.T) {
	// Saturday evening reference, Sunday (1) target: crosses the week boundary.
	saturday := time.Date(2026, 3, 7, 22, 0, 0, 0, time.UTC)
	got, err := Next(clock(8, 0), 1, saturday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC), got)
}

func TestNextZeroesSeconds(t *testing.T) {
	ref := time.Date(2026, 3, 2, 12, 0, 33, 0, time.UTC)
	got, err := Next(clock(15, 30), 2, ref)
	require.NoError(t, err)

	assert.Zero(t, got.Second())
	assert.Zero(t, got.Nanosecond())
}

func TestNextInvalidWeekday(t *testing.T) {
	for _, weekday := range []int{0, 8, -1} {
		_, err := Next(clock(7, 0), weekday, monday)
		assert.ErrorIs(t, err, ErrNoOccurrence)
	}
}

func TestNextNeverInPast(t *testing.T) {
	for weekday := 1; weekday <= 7; weekday++ {
		for _, hour := range []int{0, 11, 12, 13, 23} {
			got, err := Next(clock(hour, 0), weekday, monday)
			require.NoError(t, err)
			assert.True(t, got.After(monday), "weekday %d hour %d", weekday, hour)
			assert.True(t, got.Sub(monday) <= 7*24*time.Hour)
		}
	}
}

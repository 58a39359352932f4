package period

import (
	"testing"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWidensToWholeDays(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	w, err := Parse("2026-03-01", "2026-03-07", loc, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2026, 3, 7, 23, 59, 59, int(999*time.Millisecond), loc), w.End)
	assert.True(t, w.Contains(time.Date(2026, 3, 7, 23, 0, 0, 0, loc)))
	assert.False(t, w.Contains(time.Date(2026, 3, 8, 0, 0, 0, 0, loc)))
}

func TestParseDefaultsAndErrors(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 4, 5, 0, time.UTC)

	w, err := Parse("", "", time.UTC, now.AddDate(0, 0, -7), now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, EndOfDay(now), w.End)

	_, err = Parse("2026-05-21", "2026-05-20", time.UTC, now, now)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = Parse("yesterday", "", time.UTC, now, now)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, apperr.Message(err), "startDate")
}

func TestParseBound(t *testing.T) {
	b, err := ParseBound("endDate", " ", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = ParseBound("endDate", "2026-01-02T10:00:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Hour())
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), MonthStart(time.Date(2026, 2, 28, 22, 0, 0, 0, time.UTC)))
}

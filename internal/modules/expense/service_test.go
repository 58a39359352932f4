package expense

import (
	"context"
	"testing"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(f float64) *httpx.Number {
	n := httpx.Number(f)
	return &n
}

func day(s string) *string { return &s }

func TestCreateExpense(t *testing.T) {
	svc := NewService(&memoryRepo{}, time.UTC)
	ctx := context.Background()
	owner := uuid.New()

	e, err := svc.Create(ctx, owner, CreateRequest{Reason: "  Electricity ", Amount: amount(1200)})
	require.NoError(t, err)
	assert.Equal(t, "Electricity", e.Reason)
	assert.Equal(t, owner, *e.UserID)
	assert.WithinDuration(t, time.Now(), e.Date, time.Minute)

	for name, req := range map[string]CreateRequest{
		"no reason":      {Amount: amount(1)},
		"no amount":      {Reason: "Rent"},
		"negative":       {Reason: "Rent", Amount: amount(-5)},
		"malformed date": {Reason: "Rent", Amount: amount(5), Date: day("01/02/2026")},
	} {
		_, err := svc.Create(ctx, owner, req)
		assert.True(t, apperr.Is(err, apperr.KindValidation), name)
	}
}

func TestListMineFiltersByUserAndWholeDays(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, time.UTC)
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()

	for _, tc := range []struct {
		user uuid.UUID
		date string
	}{
		{owner, "2026-04-01T08:00:00Z"},
		{owner, "2026-04-03T23:30:00Z"},
		{owner, "2026-04-04T00:00:00Z"},
		{other, "2026-04-02T10:00:00Z"},
	} {
		_, err := svc.Create(ctx, tc.user, CreateRequest{Reason: "Misc", Amount: amount(10), Date: day(tc.date)})
		require.NoError(t, err)
	}

	all, err := svc.ListMine(ctx, owner, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 4, all[0].Date.Day(), "newest first")

	ranged, err := svc.ListMine(ctx, owner, "2026-04-01", "2026-04-03")
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	from, err := svc.ListMine(ctx, owner, "2026-04-02", "")
	require.NoError(t, err)
	assert.Len(t, from, 2)

	_, err = svc.ListMine(ctx, owner, "2026-04-05", "2026-04-01")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

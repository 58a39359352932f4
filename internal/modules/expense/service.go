package expense

import (
	"context"
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/georgemunganga/supermart-backend/internal/period"
	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Expense, error)
	// ListMine returns the user's expenses. Blank bounds are open; given
	// bounds are widened to whole days.
	ListMine(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]*Expense, error)
}

type service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService creates an expense service reading dates in loc.
func NewService(repo Repository, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Expense, error) {
	reason := strings.TrimSpace(req.Reason)
	switch {
	case reason == "":
		return nil, apperr.Validation("Please add a reason for the expense")
	case req.Amount == nil:
		return nil, apperr.Validation("Please add an amount")
	case req.Amount.Float() < 0:
		return nil, apperr.Validation("Amount cannot be negative")
	}

	date := s.now()
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		d, err := httpx.ParseDate(*req.Date, s.loc)
		if err != nil {
			return nil, apperr.Validation("date: %v", err)
		}
		date = d
	}

	e := &Expense{
		ID:     uuid.New(),
		Reason: reason,
		Amount: req.Amount.Float(),
		Date:   date,
		UserID: &userID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]*Expense, error) {
	from, err := period.ParseBound("startDate", startDate, s.loc)
	if err != nil {
		return nil, err
	}
	to, err := period.ParseBound("endDate", endDate, s.loc)
	if err != nil {
		return nil, err
	}

	f := Filter{UserID: &userID}
	if from != nil {
		start := period.StartOfDay(*from)
		f.From = &start
	}
	if to != nil {
		end := period.EndOfDay(*to)
		f.To = &end
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, apperr.Validation("startDate must not be after endDate")
	}
	return s.repo.List(ctx, f)
}

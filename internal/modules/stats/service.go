package stats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service records purchases against a product's statistics.
type Service interface {
	// Record adds qty to both counters, resetting the trailing-month counter
	// first when its last reset is more than one calendar month old. A
	// missing row is created with both counters set to qty.
	Record(ctx context.Context, productID uuid.UUID, qty int) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new purchase-stats service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Record(ctx context.Context, productID uuid.UUID, qty int) error {
	now := s.now()

	ps, err := s.repo.GetByProduct(ctx, productID)
	if errors.Is(err, ErrNotFound) {
		ps = &PurchaseStats{
			ID:             uuid.New(),
			ProductID:      productID,
			LastMonthReset: now,
		}
	} else if err != nil {
		return err
	} else if ps.LastMonthReset.Before(now.AddDate(0, -1, 0)) {
		ps.LastMonthPurchases = 0
		ps.LastMonthReset = now
	}

	ps.TotalPurchases += qty
	ps.LastMonthPurchases += qty
	ps.LastPurchase = &now

	return s.repo.Save(ctx, ps)
}

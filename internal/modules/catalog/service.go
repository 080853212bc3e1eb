package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	// ListMenu returns the public menu: active products with stock on hand.
	ListMenu(ctx context.Context) ([]*MenuItem, error)

	// ListAll returns every product with its stock row. Manager view.
	ListAll(ctx context.Context) ([]*ProductWithStock, error)

	// Featured returns up to six sellable products, popular ones first,
	// padded with the newest additions.
	Featured(ctx context.Context) ([]*MenuItem, error)

	// CreateProduct creates a product. It stays inactive until stocked.
	CreateProduct(ctx context.Context, req SaveProductRequest) (*Product, error)

	// UpdateProduct updates product details including the active flag.
	UpdateProduct(ctx context.Context, id string, req SaveProductRequest) (*Product, error)

	// DeleteProduct removes a product and its stock row.
	DeleteProduct(ctx context.Context, id string) error
}

const (
	featuredCount     = 6
	popularMonthlyBar = 5
)

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListMenu(ctx context.Context) ([]*MenuItem, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *service) ListAll(ctx context.Context) ([]*ProductWithStock, error) {
	return s.repo.ListWithStock(ctx)
}

func (s *service) Featured(ctx context.Context) ([]*MenuItem, error) {
	featured, err := s.repo.ListPopularAvailable(ctx, popularMonthlyBar, featuredCount)
	if err != nil {
		return nil, err
	}
	if len(featured) < featuredCount {
		exclude := make([]uuid.UUID, len(featured))
		for i, item := range featured {
			exclude[i] = item.ID
		}
		recent, err := s.repo.ListRecentAvailable(ctx, exclude, featuredCount-len(featured))
		if err != nil {
			return nil, err
		}
		featured = append(featured, recent...)
	}
	return featured, nil
}

func (s *service) CreateProduct(ctx context.Context, req SaveProductRequest) (*Product, error) {
	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    false,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req SaveProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Price = req.Price
	p.Description = req.Description
	p.Category = req.Category
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

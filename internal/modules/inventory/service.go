package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sweetbite/sweetbite-backend/internal/modules/catalog"
	"github.com/sweetbite/sweetbite-backend/pkg/imagestore"
	"github.com/sweetbite/sweetbite-backend/pkg/logger"
)

// Service defines the inventory business logic: the unified product+stock
// view and its write operations, including image attachment.
type Service interface {
	// List returns every product joined to its stock row.
	List(ctx context.Context) ([]*catalog.ProductWithStock, error)

	// AddItem creates a product together with its stock row. The product is
	// immediately active and sellable.
	AddItem(ctx context.Context, req SaveItemRequest, image *ImageUpload) (*catalog.ProductWithStock, error)

	// UpdateItem updates a product and its stock row, creating the stock row
	// when absent. A replaced or removed image is deleted from the image
	// store; deletion failures are logged, never surfaced.
	UpdateItem(ctx context.Context, id string, req SaveItemRequest, image *ImageUpload) (*catalog.ProductWithStock, error)

	// DeleteItem removes the product, its stock row and its image.
	DeleteItem(ctx context.Context, id string) error
}

type service struct {
	products catalog.Repository
	stocks   Repository
	images   imagestore.Store
	log      logger.Logger
}

// NewService creates a new inventory service.
func NewService(products catalog.Repository, stocks Repository, images imagestore.Store, log logger.Logger) Service {
	return &service{products: products, stocks: stocks, images: images, log: log}
}

func (s *service) List(ctx context.Context) ([]*catalog.ProductWithStock, error) {
	return s.products.ListWithStock(ctx)
}

func (s *service) AddItem(ctx context.Context, req SaveItemRequest, image *ImageUpload) (*catalog.ProductWithStock, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	imageURL := ""
	if image != nil {
		url, err := s.images.Upload(image.Data, image.Filename)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = url
	}

	category := req.Category
	if category == "" {
		category = "Dessert"
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	p := &catalog.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    category,
		Image:       imageURL,
		IsActive:    true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	st := &Stock{
		ID:        uuid.New(),
		ProductID: p.ID,
		Quantity:  req.Quantity,
		Unit:      unit,
		Expiry:    req.Expiry,
		Status:    StatusForQuantity(req.Quantity),
	}
	if err := s.stocks.Upsert(ctx, st); err != nil {
		return nil, err
	}

	return joined(p, st), nil
}

func (s *service) UpdateItem(ctx context.Context, id string, req SaveItemRequest, image *ImageUpload) (*catalog.ProductWithStock, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := p.Image
	if req.RemoveImage && p.Image != "" {
		s.deleteImage(p.Image)
		imageURL = ""
	}
	if image != nil {
		if p.Image != "" {
			s.deleteImage(p.Image)
		}
		url, err := s.images.Upload(image.Data, image.Filename)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = url
	}

	p.Name = req.Name
	p.Price = req.Price
	p.Description = req.Description
	p.Category = req.Category
	p.Image = imageURL
	p.IsActive = true
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	st, err := s.stocks.GetByProduct(ctx, id)
	if errors.Is(err, ErrNotFound) {
		st = &Stock{ID: uuid.New(), ProductID: p.ID}
	} else if err != nil {
		return nil, err
	}
	st.Quantity = req.Quantity
	st.Unit = req.Unit
	st.Expiry = req.Expiry
	st.Status = StatusForQuantity(req.Quantity)
	if err := s.stocks.Upsert(ctx, st); err != nil {
		return nil, err
	}

	return joined(p, st), nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Image != "" {
		s.deleteImage(p.Image)
	}
	return s.products.Delete(ctx, id)
}

// deleteImage swallows failures: a dangling file is preferable to failing
// the whole inventory write.
func (s *service) deleteImage(url string) {
	if err := s.images.Delete(url); err != nil {
		s.log.Warn("image delete failed", "url", url, "err", err)
	}
}

func joined(p *catalog.Product, st *Stock) *catalog.ProductWithStock {
	return &catalog.ProductWithStock{
		Product: *p,
		Stock: &catalog.StockInfo{
			ID:       st.ID,
			Quantity: st.Quantity,
			Unit:     st.Unit,
			Expiry:   st.Expiry,
			Status:   string(st.Status),
		},
	}
}

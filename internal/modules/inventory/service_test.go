package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sweetbite/sweetbite-backend/internal/modules/catalog"
	"github.com/sweetbite/sweetbite-backend/pkg/logger"
)

type fakeProducts struct {
	catalog.Repository
	byID    map[string]*catalog.Product
	created []*catalog.Product
	updated []*catalog.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{byID: make(map[string]*catalog.Product)}
}

func (f *fakeProducts) Create(_ context.Context, p *catalog.Product) error {
	f.created = append(f.created, p)
	f.byID[p.ID.String()] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, p *catalog.Product) error {
	f.updated = append(f.updated, p)
	return nil
}

type fakeStocks struct {
	byProduct map[string]*Stock
}

func newFakeStocks() *fakeStocks { return &fakeStocks{byProduct: make(map[string]*Stock)} }

func (f *fakeStocks) GetByProduct(_ context.Context, productID string) (*Stock, error) {
	st, ok := f.byProduct[productID]
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}

func (f *fakeStocks) Upsert(_ context.Context, st *Stock) error {
	f.byProduct[st.ProductID.String()] = st
	return nil
}

type fakeImages struct {
	uploads   int
	deletes   []string
	deleteErr error
}

func (f *fakeImages) Upload(_ []byte, filename string) (string, error) {
	f.uploads++
	return "/uploads/" + filename, nil
}

func (f *fakeImages) Delete(url string) error {
	f.deletes = append(f.deletes, url)
	return f.deleteErr
}

func TestAddItemDerivesStatusAndDefaults(t *testing.T) {
	products := newFakeProducts()
	stocks := newFakeStocks()
	svc := NewService(products, stocks, &fakeImages{}, logger.Nop())

	item, err := svc.AddItem(context.Background(), SaveItemRequest{
		Name: "Sourdough", Price: 8, Quantity: 4,
	}, nil)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if !item.IsActive {
		t.Error("inventory-created product should be immediately sellable")
	}
	if item.Category != "Dessert" || item.Stock.Unit != "pcs" {
		t.Errorf("defaults = %q/%q, want Dessert/pcs", item.Category, item.Stock.Unit)
	}
	if item.Stock.Status != string(StatusLowStock) {
		t.Errorf("status = %q, want %q for quantity 4", item.Stock.Status, StatusLowStock)
	}
}

func TestUpdateItemCreatesMissingStockRow(t *testing.T) {
	products := newFakeProducts()
	p := &catalog.Product{ID: uuid.New(), Name: "Sourdough"}
	products.byID[p.ID.String()] = p
	stocks := newFakeStocks()
	svc := NewService(products, stocks, &fakeImages{}, logger.Nop())

	item, err := svc.UpdateItem(context.Background(), p.ID.String(), SaveItemRequest{
		Name: "Sourdough", Quantity: 25, Unit: "loaves",
	}, nil)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if item.Stock.Quantity != 25 || item.Stock.Status != string(StatusInStock) {
		t.Errorf("stock = %d/%q, want 25/In Stock", item.Stock.Quantity, item.Stock.Status)
	}
	if _, ok := stocks.byProduct[p.ID.String()]; !ok {
		t.Error("stock row was not created")
	}
}

func TestUpdateItemSwallowsImageDeleteFailure(t *testing.T) {
	products := newFakeProducts()
	p := &catalog.Product{ID: uuid.New(), Name: "Sourdough", Image: "/uploads/old.png"}
	products.byID[p.ID.String()] = p
	images := &fakeImages{deleteErr: errors.New("disk gone")}
	svc := NewService(products, newFakeStocks(), images, logger.Nop())

	item, err := svc.UpdateItem(context.Background(), p.ID.String(), SaveItemRequest{
		Name: "Sourdough", Quantity: 1, RemoveImage: true,
	}, nil)
	if err != nil {
		t.Fatalf("UpdateItem should not fail on image delete: %v", err)
	}
	if item.Image != "" {
		t.Errorf("image = %q, want cleared", item.Image)
	}
	if len(images.deletes) != 1 {
		t.Errorf("delete attempts = %d, want 1", len(images.deletes))
	}
}

func TestUpdateItemReplacesImage(t *testing.T) {
	products := newFakeProducts()
	p := &catalog.Product{ID: uuid.New(), Name: "Sourdough", Image: "/uploads/old.png"}
	products.byID[p.ID.String()] = p
	images := &fakeImages{}
	svc := NewService(products, newFakeStocks(), images, logger.Nop())

	item, err := svc.UpdateItem(context.Background(), p.ID.String(), SaveItemRequest{
		Name: "Sourdough", Quantity: 1,
	}, &ImageUpload{Data: []byte("png"), Filename: "new.png"})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if item.Image != "/uploads/new.png" {
		t.Errorf("image = %q, want the new upload", item.Image)
	}
	if len(images.deletes) != 1 || images.deletes[0] != "/uploads/old.png" {
		t.Errorf("deletes = %v, want the old image removed", images.deletes)
	}
}

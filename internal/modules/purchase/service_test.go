package purchase

import (
	"context"
	"testing"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(f float64) *httpx.Number {
	n := httpx.Number(f)
	return &n
}

func str(s string) *string { return &s }

func (f *fixture) seed(name string, stock int) catalog.Product {
	p := catalog.Product{ID: uuid.New(), Name: name, Category: "Grocery", CostPrice: 10, SellingPrice: 12, StockQuantity: stock}
	f.catalog.Put(p)
	return p
}

func TestCreateWithNewItemsDedupesCategory(t *testing.T) {
	f := newFixture()

	p, err := f.svc.Create(context.Background(), CreateRequest{
		Supplier:      f.supplier.ID.String(),
		InvoiceNumber: "PO-1",
		Items: []ItemRequest{
			{IsNew: true, Name: "Rice", Category: "grocery", CostPrice: num(40), Quantity: num(10)},
			{IsNew: true, Name: "Rice", Category: "Grocery", CostPrice: num(40), Quantity: num(5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, p.Status)
	assert.Len(t, f.catalog.AllProducts(), 2)
	assert.Len(t, f.catalog.AllCategories(), 1)
	assert.Equal(t, 600.0, p.TotalAmount)
	assert.Equal(t, "Metro", p.Supplier.Name)

	for _, item := range p.Items {
		prod, ok := f.catalog.Product(item.ProductID)
		require.True(t, ok)
		assert.Equal(t, item.Quantity, prod.StockQuantity)
		assert.Equal(t, 48.0, prod.SellingPrice)
		assert.Equal(t, "Metro", prod.Supplier)
	}
}

func TestCreatePendingLeavesStock(t *testing.T) {
	f := newFixture()
	oil := f.seed("Oil", 3)

	p, err := f.svc.Create(context.Background(), CreateRequest{
		Supplier:      f.supplier.ID.String(),
		InvoiceNumber: "PO-2",
		Status:        "Pending",
		Discount:      num(15),
		Items:         []ItemRequest{{Product: str(oil.ID.String()), CostPrice: num(50), Quantity: num(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 85.0, p.TotalAmount)
	assert.Equal(t, "Oil", p.Items[0].ProductName)

	got, _ := f.catalog.Product(oil.ID)
	assert.Equal(t, 3, got.StockQuantity)
	assert.Equal(t, 10.0, got.CostPrice)
}

func TestCreateRollsBackOnMissingProduct(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateRequest{
		Supplier:      f.supplier.ID.String(),
		InvoiceNumber: "PO-3",
		Items: []ItemRequest{
			{IsNew: true, Name: "Tea", Category: "Beverages", CostPrice: num(100), Quantity: num(1)},
			{Product: str(uuid.New().String()), CostPrice: num(5), Quantity: num(1)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, f.catalog.AllProducts())
	assert.Empty(t, f.catalog.AllCategories())

	list, err := f.svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateRequest{})
	assert.Equal(t, "missing required fields: supplier, invoiceNumber, items", apperr.Message(err))

	_, err = f.svc.Create(ctx, CreateRequest{
		Supplier: uuid.New().String(), InvoiceNumber: "X",
		Items: []ItemRequest{{IsNew: true, Name: "Tea", CostPrice: num(1), Quantity: num(1)}},
	})
	assert.Equal(t, "Supplier not found", apperr.Message(err))

	for name, item := range map[string]ItemRequest{
		"fractional quantity": {IsNew: true, Name: "Tea", CostPrice: num(1), Quantity: num(1.5)},
		"missing cost":        {IsNew: true, Name: "Tea", Quantity: num(1)},
		"bad expiry":          {IsNew: true, Name: "Tea", CostPrice: num(1), Quantity: num(1), ExpiryDate: str("soon")},
	} {
		_, err := f.svc.Create(ctx, CreateRequest{Supplier: f.supplier.ID.String(), InvoiceNumber: "X", Items: []ItemRequest{item}})
		assert.True(t, apperr.Is(err, apperr.KindValidation), name)
	}

	_, err = f.svc.Create(ctx, CreateRequest{
		Supplier: f.supplier.ID.String(), InvoiceNumber: "X", Status: "Shipped",
		Items: []ItemRequest{{IsNew: true, Name: "Tea", CostPrice: num(1), Quantity: num(1)}},
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDeleteKeepsStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sugar := f.seed("Sugar", 0)

	p, err := f.svc.Create(ctx, CreateRequest{
		Supplier:      f.supplier.ID.String(),
		InvoiceNumber: "PO-4",
		Items:         []ItemRequest{{Product: str(sugar.ID.String()), CostPrice: num(30), SellingPrice: num(36), Quantity: num(20)}},
	})
	require.NoError(t, err)

	got, _ := f.catalog.Product(sugar.ID)
	assert.Equal(t, 20, got.StockQuantity)
	assert.Equal(t, 36.0, got.SellingPrice)

	require.NoError(t, f.svc.Delete(ctx, p.ID))
	got, _ = f.catalog.Product(sugar.ID)
	assert.Equal(t, 20, got.StockQuantity)

	_, err = f.svc.Get(ctx, p.ID)
	assert.Equal(t, "Purchase not found", apperr.Message(err))
}

func TestListSearchesInvoiceAndSupplier(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, inv := range []string{"PO-100", "GRN-7"} {
		_, err := f.svc.Create(ctx, CreateRequest{
			Supplier:      f.supplier.ID.String(),
			InvoiceNumber: inv,
			Items:         []ItemRequest{{IsNew: true, Name: inv, CostPrice: num(1), Quantity: num(1)}},
		})
		require.NoError(t, err)
	}

	got, err := f.svc.List(ctx, "grn")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "GRN-7", got[0].InvoiceNumber)

	got, err = f.svc.List(ctx, "metro")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "GRN-7", got[0].InvoiceNumber, "newest first")
}

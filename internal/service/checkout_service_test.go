package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/ticket"
)

func checkoutFixture() (*ticket.MemoryStore, *stubProductRepo, *stubSaleRepo, CheckoutService) {
	store := ticket.NewMemoryStore()
	products := newStubProductRepo(
		model.Product{ID: 1, Code: "AN-001", Name: "Anillo oro 14k", SalePrice: decimal.NewFromInt(500), Stock: intPtr(5), IsActive: true},
		model.Product{ID: 2, Code: "SRV-001", Name: "Grabado", SalePrice: decimal.NewFromInt(150), Stock: nil, IsActive: true},
	)
	sales := newStubSaleRepo()
	svc := NewCheckoutService(store, products, sales, products)
	return store, products, sales, svc
}

func putTicket(t *testing.T, store *ticket.MemoryStore, userID uint, tk *ticket.Ticket) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), ticket.Key(userID), tk))
}

func TestCheckoutSuccess(t *testing.T) {
	ctx := context.Background()
	store, products, _, svc := checkoutFixture()

	tk := ticket.New()
	tk.SetQty("1", 2) // 2 x 500 = 1000
	tk.Client = &ticket.ClientRef{Name: "Ana Torres", Phone: "5511122233"}
	putTicket(t, store, 7, tk)

	sale, err := svc.Checkout(ctx, 7, dto.CheckoutRequest{
		DiscountPct:    "10",
		PaymentMethod:  "cash",
		AmountTendered: "1000",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SaleStatusPaid, sale.Status)
	assert.Equal(t, "V000001", sale.Folio)
	require.NotNil(t, sale.UserID)
	assert.Equal(t, uint(7), *sale.UserID)
	assert.Equal(t, "1000.00", sale.Subtotal.StringFixed(2))
	assert.Equal(t, "100.00", sale.DiscountAmount.StringFixed(2))
	assert.Equal(t, "900.00", sale.Total.StringFixed(2))
	assert.Equal(t, "1000.00", sale.AmountPaid.StringFixed(2))
	assert.Equal(t, "100.00", sale.ChangeAmount.StringFixed(2))
	assert.Equal(t, model.PaymentCash, sale.PaymentMethod)
	assert.Nil(t, sale.ClientID)
	assert.Equal(t, "Ana Torres", sale.QuickClientName)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Anillo oro 14k", sale.Items[0].ProductName)
	assert.Equal(t, 2, sale.Items[0].Qty)
	assert.Equal(t, "500.00", sale.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "1000.00", sale.Items[0].LineTotal.StringFixed(2))

	// Stock decremented
	p, err := products.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 3, *p.Stock)

	// Ticket reset after success
	after, err := store.Get(ctx, ticket.Key(7))
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.False(t, after.HasItems())
}

func TestCheckoutRegisteredClient(t *testing.T) {
	ctx := context.Background()
	store, _, _, svc := checkoutFixture()

	tk := ticket.New()
	tk.SetQty("2", 1)
	tk.Client = &ticket.ClientRef{ID: 42}
	putTicket(t, store, 1, tk)

	sale, err := svc.Checkout(ctx, 1, dto.CheckoutRequest{AmountTendered: "150"})
	require.NoError(t, err)
	require.NotNil(t, sale.ClientID)
	assert.Equal(t, uint(42), *sale.ClientID)
	assert.Empty(t, sale.QuickClientName)
}

func TestCheckoutRejectionOrder(t *testing.T) {
	ctx := context.Background()
	store, _, _, svc := checkoutFixture()
	req := dto.CheckoutRequest{AmountTendered: "0"}

	// No ticket at all
	_, err := svc.Checkout(ctx, 1, req)
	assert.ErrorIs(t, err, ErrInvalidTicket)

	// Empty ticket
	putTicket(t, store, 1, ticket.New())
	_, err = svc.Checkout(ctx, 1, req)
	assert.ErrorIs(t, err, ErrEmptyTicket)

	// Items but no client
	tk := ticket.New()
	tk.SetQty("1", 1)
	putTicket(t, store, 1, tk)
	_, err = svc.Checkout(ctx, 1, req)
	assert.ErrorIs(t, err, ErrClientRequired)

	// Client but short payment
	tk.Client = &ticket.ClientRef{Name: "Ana"}
	putTicket(t, store, 1, tk)
	_, err = svc.Checkout(ctx, 1, dto.CheckoutRequest{AmountTendered: "499.99"})
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// Rejections leave the ticket intact
	after, err := store.Get(ctx, ticket.Key(1))
	require.NoError(t, err)
	assert.True(t, after.HasItems())
}

func TestCheckoutStockRecheckUnderLock(t *testing.T) {
	ctx := context.Background()
	store := ticket.NewMemoryStore()
	products := newStubProductRepo(
		model.Product{ID: 1, Name: "Pieza única", SalePrice: decimal.NewFromInt(300), Stock: intPtr(1), IsActive: true},
	)
	sales := newStubSaleRepo()
	svc := NewCheckoutService(store, products, sales, products)

	// Two operators hold the same last unit in their tickets.
	for _, op := range []uint{1, 2} {
		tk := ticket.New()
		tk.SetQty("1", 1)
		tk.Client = &ticket.ClientRef{Name: "Cliente"}
		putTicket(t, store, op, tk)
	}

	req := dto.CheckoutRequest{AmountTendered: "300"}
	_, err := svc.Checkout(ctx, 1, req)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, 2, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock insuficiente")

	// Loser's ticket survives for correction
	after, err := store.Get(ctx, ticket.Key(2))
	require.NoError(t, err)
	assert.True(t, after.HasItems())
}

func TestCheckoutUntrackedStockSkipsChecks(t *testing.T) {
	ctx := context.Background()
	store, products, _, svc := checkoutFixture()

	tk := ticket.New()
	tk.SetQty("2", 10) // untracked service item
	tk.Client = &ticket.ClientRef{Name: "Ana"}
	putTicket(t, store, 1, tk)

	sale, err := svc.Checkout(ctx, 1, dto.CheckoutRequest{AmountTendered: "1500"})
	require.NoError(t, err)
	assert.Equal(t, "1500.00", sale.Total.StringFixed(2))

	p, err := products.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, p.Stock, "untracked products never gain a stock value")
}

func TestCancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	store, products, _, svc := checkoutFixture()

	tk := ticket.New()
	tk.SetQty("1", 3)
	tk.Client = &ticket.ClientRef{Name: "Ana"}
	putTicket(t, store, 1, tk)

	sale, err := svc.Checkout(ctx, 1, dto.CheckoutRequest{AmountTendered: "1500"})
	require.NoError(t, err)

	p, _ := products.FindByID(ctx, 1)
	require.Equal(t, 2, *p.Stock)

	require.NoError(t, svc.Cancel(ctx, sale.ID))

	p, _ = products.FindByID(ctx, 1)
	assert.Equal(t, 5, *p.Stock)

	got, err := svc.GetModel(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusCancelled, got.Status)

	// Second cancel is informational and restores nothing
	err = svc.Cancel(ctx, sale.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	p, _ = products.FindByID(ctx, 1)
	assert.Equal(t, 5, *p.Stock)
}

func TestCancelMissingSale(t *testing.T) {
	_, _, _, svc := checkoutFixture()
	err := svc.Cancel(context.Background(), 999)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestListMapsSales(t *testing.T) {
	ctx := context.Background()
	store, _, _, svc := checkoutFixture()

	tk := ticket.New()
	tk.SetQty("2", 1)
	tk.Client = &ticket.ClientRef{Name: "Ana"}
	putTicket(t, store, 1, tk)
	_, err := svc.Checkout(ctx, 1, dto.CheckoutRequest{AmountTendered: "150"})
	require.NoError(t, err)

	resp, err := svc.List(ctx, dto.SaleFilter{Status: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "V000001", resp.Data[0].Folio)
	assert.Equal(t, "Ana", resp.Data[0].ClientDisplay)

	created, err := time.Parse(time.RFC3339, resp.Data[0].CreatedAt)
	require.NoError(t, err, "list timestamps must be RFC3339 with a real offset")
	assert.WithinDuration(t, time.Now(), created, time.Minute)

	detail, err := svc.Get(ctx, resp.Data[0].ID)
	require.NoError(t, err)
	created, err = time.Parse(time.RFC3339, detail.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
}

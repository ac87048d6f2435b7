package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/ticket"
)

func ticketFixture() (*ticket.MemoryStore, TicketService) {
	store := ticket.NewMemoryStore()
	products := newStubProductRepo(
		model.Product{ID: 1, Code: "AN-001", Name: "Anillo oro 14k", SalePrice: decimal.NewFromInt(500), Stock: intPtr(3), IsActive: true},
		model.Product{ID: 2, Code: "SRV-001", Name: "Grabado", SalePrice: decimal.NewFromInt(150), Stock: nil, IsActive: true},
		model.Product{ID: 3, Code: "AG-001", Name: "Agotado", SalePrice: decimal.NewFromInt(99), Stock: intPtr(0), IsActive: true},
	)
	clients := newStubClientRepo(
		model.Client{ID: 10, Name: "María", LastName: "González", Phone: "5512345678", IsActive: true},
		model.Client{ID: 11, Name: "Baja", IsActive: false},
	)
	return store, NewTicketService(store, products, clients, products)
}

func TestCurrentMaterializesEmptyTicket(t *testing.T) {
	ctx := context.Background()
	store, svc := ticketFixture()

	resp, err := svc.Current(ctx, 1)
	require.NoError(t, err)
	assert.False(t, resp.HasItems)
	assert.Equal(t, model.PaymentCash, resp.PaymentMethod)
	assert.Equal(t, "Sin cliente", resp.ClientDisplay)

	stored, err := store.Get(ctx, ticket.Key(1))
	require.NoError(t, err)
	assert.NotNil(t, stored, "first visit persists the empty ticket")
}

func TestAddIncrementsAndCapsAtStock(t *testing.T) {
	ctx := context.Background()
	_, svc := ticketFixture()

	resp, err := svc.Add(ctx, 1, "1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Qty)
	assert.Empty(t, resp.Warning)

	svc.Add(ctx, 1, "1")
	resp, err = svc.Add(ctx, 1, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Items[0].Qty)

	// Fourth add is capped with a warning, not an error
	resp, err = svc.Add(ctx, 1, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Items[0].Qty)
	assert.Contains(t, resp.Warning, "Stock máximo")
}

func TestAddRejectsZeroStockAndUnknown(t *testing.T) {
	ctx := context.Background()
	_, svc := ticketFixture()

	_, err := svc.Add(ctx, 1, "3")
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = svc.Add(ctx, 1, "404")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Add(ctx, 1, "not-a-number")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddUntrackedProductHasNoCap(t *testing.T) {
	ctx := context.Background()
	_, svc := ticketFixture()

	var resp *dto.TicketSummaryResponse
	var err error
	for i := 0; i < 25; i++ {
		resp, err = svc.Add(ctx, 1, "2")
		require.NoError(t, err)
	}
	assert.Equal(t, 25, resp.Items[0].Qty)
	assert.Empty(t, resp.Warning)
}

func TestUpdateNormalizesPaymentInputs(t *testing.T) {
	ctx := context.Background()
	_, svc := ticketFixture()
	svc.Add(ctx, 1, "1")

	resp, err := svc.Update(ctx, 1, dto.UpdateTicketRequest{
		DiscountPct:    "150",
		PaymentMethod:  "cheque",
		AmountTendered: "  250.5 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.DiscountPct.StringFixed(2))
	assert.Equal(t, model.PaymentCash, resp.PaymentMethod)
	assert.Equal(t, "250.5", resp.AmountTenderedRaw)
	assert.Equal(t, "250.50", resp.AmountTendered.StringFixed(2))
}

func TestQuickClientRequiresName(t *testing.T) {
	ctx := context.Background()
	_, svc := ticketFixture()

	_, err := svc.SetQuickClient(ctx, 1, "   ", "555")
	assert.ErrorIs(t, err, ErrQuickClientName)

	resp, err := svc.SetQuickClient(ctx, 1, "Ana", "555")
	require.NoError(t, err)
	assert.Equal(t, "Ana (555)", resp.ClientDisplay)
}

func TestSelectClient(t *testing.T) {
	ctx := context.Background()
	_, svc := ticketFixture()

	resp, err := svc.SelectClient(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "María González", resp.ClientDisplay)

	// Inactive clients cannot be attached
	_, err = svc.SelectClient(ctx, 1, 11)
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = svc.SelectClient(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrClientNotFound)

	resp, err = svc.ClearClient(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sin cliente", resp.ClientDisplay)
}

func TestSummaryReflectsGhostLines(t *testing.T) {
	ctx := context.Background()
	store, svc := ticketFixture()

	// A ticket referencing a product that has since disappeared
	tk := ticket.New()
	tk.SetQty("1", 1)
	tk.SetQty("404", 2)
	require.NoError(t, store.Set(ctx, ticket.Key(1), tk))

	resp, err := svc.Current(ctx, 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, uint(1), resp.Items[0].ProductID)
	assert.Equal(t, "500.00", resp.Subtotal.StringFixed(2))
}

func TestSummaryDropsDeactivatedProducts(t *testing.T) {
	ctx := context.Background()
	store := ticket.NewMemoryStore()
	products := newStubProductRepo(
		model.Product{ID: 1, Code: "AN-001", Name: "Anillo oro 14k", SalePrice: decimal.NewFromInt(500), Stock: intPtr(3), IsActive: true},
		model.Product{ID: 9, Code: "DJ-001", Name: "Dije descontinuado", SalePrice: decimal.NewFromInt(800), Stock: intPtr(2), IsActive: false},
	)
	svc := NewTicketService(store, products, newStubClientRepo(), products)

	tk := ticket.New()
	tk.SetQty("1", 1)
	tk.SetQty("9", 1)
	require.NoError(t, store.Set(ctx, ticket.Key(1), tk))

	// The deactivated line prices like a ghost: dropped, not charged.
	resp, err := svc.Current(ctx, 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, uint(1), resp.Items[0].ProductID)
	assert.Equal(t, "500.00", resp.Subtotal.StringFixed(2))
}

package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishellCastillorb/Punto-Venta/internal/model"
)

func TestNewTicketDefaults(t *testing.T) {
	tk := New()
	assert.Empty(t, tk.Items)
	assert.Equal(t, "0", tk.DiscountPct)
	assert.Equal(t, model.PaymentCash, tk.PaymentMethod)
	assert.Empty(t, tk.AmountTendered)
	assert.False(t, tk.HasItems())
	assert.False(t, tk.ClientAttached())
}

func TestNormalizeRepairsMalformedState(t *testing.T) {
	var nilTicket *Ticket
	assert.NotNil(t, nilTicket.Normalize())

	tk := &Ticket{
		Items:         map[string]int{"1": 2, "2": 0, "3": -4},
		DiscountPct:   "  ",
		PaymentMethod: "bitcoin",
		Client:        &ClientRef{Name: "   "},
	}
	tk.Normalize()

	assert.Equal(t, map[string]int{"1": 2}, tk.Items)
	assert.Equal(t, "0", tk.DiscountPct)
	assert.Equal(t, model.PaymentCash, tk.PaymentMethod)
	assert.Nil(t, tk.Client, "unusable client refs are dropped")
}

func TestSetQtyAndDecrement(t *testing.T) {
	tk := New()
	tk.SetQty("5", 3)
	assert.Equal(t, 3, tk.Items["5"])

	tk.Decrement("5")
	assert.Equal(t, 2, tk.Items["5"])

	tk.Decrement("5")
	tk.Decrement("5")
	_, ok := tk.Items["5"]
	assert.False(t, ok, "quantity reaching zero removes the line")

	// Absent line is a no-op
	tk.Decrement("999")
	assert.Empty(t, tk.Items)

	tk.SetQty("7", 0)
	assert.Empty(t, tk.Items)
}

func TestClientAttached(t *testing.T) {
	tk := New()
	assert.False(t, tk.ClientAttached())

	tk.Client = &ClientRef{ID: 4}
	assert.True(t, tk.ClientAttached())
	assert.True(t, tk.Client.Registered())
	assert.False(t, tk.Client.Quick())

	tk.Client = &ClientRef{Name: "Ana", Phone: "555"}
	assert.True(t, tk.ClientAttached())
	assert.True(t, tk.Client.Quick())

	tk.Client = &ClientRef{Name: "   "}
	assert.False(t, tk.ClientAttached())
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := Key(1)

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got, "absent ticket reads as nil, nil")

	tk := New()
	tk.SetQty("3", 2)
	tk.AmountTendered = "100.00"
	require.NoError(t, store.Set(ctx, key, tk))

	got, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Items["3"])
	assert.Equal(t, "100.00", got.AmountTendered)

	// Mutating the copy must not leak back into the store
	got.SetQty("3", 99)
	again, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items["3"])

	// Reset replaces the ticket with a fresh empty one
	require.NoError(t, store.Reset(ctx, key))
	got, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.HasItems())
	assert.Empty(t, got.AmountTendered)
}

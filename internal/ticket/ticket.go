// Package ticket holds the in-session POS cart: the mutable line items,
// client selection and payment inputs an operator accumulates before
// checkout. A Ticket is a plain value object persisted through a Store;
// nothing here touches the database.
package ticket

import (
	"fmt"
	"strings"

	"github.com/mishellCastillorb/Punto-Venta/internal/model"
)

// ClientRef is the ticket's client selection. Exactly one representation is
// populated: a registered client id, or a quick-client name/phone snapshot.
type ClientRef struct {
	ID    uint   `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Registered reports whether the ref points at a registered client.
func (c *ClientRef) Registered() bool {
	return c != nil && c.ID != 0
}

// Quick reports whether the ref is a quick-client snapshot with a usable name.
func (c *ClientRef) Quick() bool {
	return c != nil && c.ID == 0 && strings.TrimSpace(c.Name) != ""
}

// Ticket is one operator's in-progress sale. Only raw inputs live here —
// totals are always recomputed by the pricing engine, never persisted.
type Ticket struct {
	// Items maps product id (string key) to quantity. Invariant: qty >= 1;
	// a quantity reaching 0 removes the key.
	Items  map[string]int `json:"items"`
	Client *ClientRef     `json:"client"`
	// DiscountPct is kept as the raw string; clamped to [0,100] on read.
	DiscountPct   string `json:"discount_pct"`
	PaymentMethod string `json:"payment_method"`
	// AmountTendered is preserved verbatim (blank stays blank for re-display);
	// the pricing engine parses it, treating blank as 0.
	AmountTendered string `json:"amount_tendered"`
}

// New returns an empty ticket, the state after first visit or a successful
// checkout.
func New() *Ticket {
	return &Ticket{
		Items:         map[string]int{},
		DiscountPct:   "0",
		PaymentMethod: model.PaymentCash,
	}
}

// Key is the store key for one operator's ticket.
func Key(userID uint) string {
	return fmt.Sprintf("pos:ticket:%d", userID)
}

// Normalize repairs a ticket that went through serialization or came in
// malformed, so every mutation operates on well-formed state. Returns the
// receiver for chaining; a nil receiver yields a fresh ticket.
func (t *Ticket) Normalize() *Ticket {
	if t == nil {
		return New()
	}
	if t.Items == nil {
		t.Items = map[string]int{}
	}
	for k, qty := range t.Items {
		if qty < 1 {
			delete(t.Items, k)
		}
	}
	if strings.TrimSpace(t.DiscountPct) == "" {
		t.DiscountPct = "0"
	}
	t.PaymentMethod = model.NormalizePaymentMethod(t.PaymentMethod)
	if t.Client != nil && !t.Client.Registered() && !t.Client.Quick() {
		t.Client = nil
	}
	return t
}

// HasItems reports whether the ticket has at least one line.
func (t *Ticket) HasItems() bool {
	return len(t.Items) > 0
}

// SetQty sets a line quantity; qty < 1 removes the line.
func (t *Ticket) SetQty(productKey string, qty int) {
	if qty < 1 {
		delete(t.Items, productKey)
		return
	}
	t.Items[productKey] = qty
}

// Decrement lowers a line by one, removing it at zero. Absent lines are a
// no-op.
func (t *Ticket) Decrement(productKey string) {
	qty, ok := t.Items[productKey]
	if !ok {
		return
	}
	t.SetQty(productKey, qty-1)
}

// Remove deletes a line unconditionally.
func (t *Ticket) Remove(productKey string) {
	delete(t.Items, productKey)
}

// ClientAttached reports whether a usable client is selected, a checkout
// precondition.
func (t *Ticket) ClientAttached() bool {
	return t.Client.Registered() || t.Client.Quick()
}

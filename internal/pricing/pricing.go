// Package pricing derives the checkout read-model from a ticket and a live
// inventory snapshot. Summarize is a pure function: it is recomputed on every
// render and AJAX update, and its output is never persisted — only the raw
// ticket inputs are.
package pricing

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/money"
	"github.com/mishellCastillorb/Punto-Venta/internal/ticket"
)

// ProductInfo is the inventory view the engine consumes: price, display name
// and stock. Stock == nil means the product tracks no stock and every stock
// check is skipped for it.
type ProductInfo struct {
	ID    uint
	Name  string
	Price decimal.Decimal
	Stock *int
}

// Inventory resolves ticket item keys against the catalog. Keys that do not
// resolve are simply absent from the returned map; implementations never
// panic on malformed keys.
type Inventory interface {
	Snapshot(ctx context.Context, keys []string) (map[string]ProductInfo, error)
}

// Line is one resolved ticket line.
type Line struct {
	Key       string
	ProductID uint
	Name      string
	UnitPrice decimal.Decimal
	Qty       int
	LineTotal decimal.Decimal
	Stock     *int
}

// Summary is the full reconciliation read-model for one ticket.
type Summary struct {
	Lines    []Line
	HasItems bool

	Subtotal       decimal.Decimal
	DiscountPct    decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	PaymentMethod     string
	AmountTendered    decimal.Decimal
	AmountTenderedRaw string
	Change            decimal.Decimal
	Shortfall         decimal.Decimal

	CanCharge bool
}

// Summarize resolves every ticket line against the inventory and computes
// subtotal, discount, total and the change/shortfall reconciliation. Lines
// whose product no longer resolves are dropped silently (ghost-line policy),
// so totals always reflect the current catalog.
func Summarize(ctx context.Context, t *ticket.Ticket, inv Inventory) (*Summary, error) {
	t = t.Normalize()

	discountPct := money.ClampPct(money.Parse(t.DiscountPct, decimal.Zero))
	method := model.NormalizePaymentMethod(t.PaymentMethod)
	tenderedRaw := t.AmountTendered
	tendered := money.Parse(tenderedRaw, decimal.Zero)

	keys := make([]string, 0, len(t.Items))
	for k := range t.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	snapshot := map[string]ProductInfo{}
	if len(keys) > 0 {
		var err error
		snapshot, err = inv.Snapshot(ctx, keys)
		if err != nil {
			return nil, err
		}
	}

	lines := make([]Line, 0, len(keys))
	subtotal := decimal.Zero
	for _, k := range keys {
		info, ok := snapshot[k]
		if !ok {
			continue
		}
		qty := t.Items[k]
		if qty < 1 {
			qty = 1
		}
		price := money.Round2(info.Price)
		lineTotal := money.Round2(price.Mul(decimal.NewFromInt(int64(qty))))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, Line{
			Key:       k,
			ProductID: info.ID,
			Name:      info.Name,
			UnitPrice: price,
			Qty:       qty,
			LineTotal: lineTotal,
			Stock:     info.Stock,
		})
	}

	subtotal = money.Round2(subtotal)
	discountAmount := decimal.Zero
	if subtotal.IsPositive() {
		discountAmount = money.Round2(subtotal.Mul(discountPct).Div(money.Hundred))
	}
	total := money.Round2(subtotal.Sub(discountAmount))

	change := decimal.Zero
	shortfall := decimal.Zero
	if tendered.LessThan(total) {
		shortfall = money.Round2(total.Sub(tendered))
	} else {
		change = money.Round2(tendered.Sub(total))
	}

	hasItems := len(lines) > 0
	return &Summary{
		Lines:             lines,
		HasItems:          hasItems,
		Subtotal:          subtotal,
		DiscountPct:       money.Round2(discountPct),
		DiscountAmount:    discountAmount,
		Total:             total,
		PaymentMethod:     method,
		AmountTendered:    money.Round2(tendered),
		AmountTenderedRaw: tenderedRaw,
		Change:            change,
		Shortfall:         shortfall,
		CanCharge:         hasItems && shortfall.IsZero() && !total.IsNegative(),
	}, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/money"
	"github.com/mishellCastillorb/Punto-Venta/internal/pricing"
	"github.com/mishellCastillorb/Punto-Venta/internal/repository"
	"github.com/mishellCastillorb/Punto-Venta/internal/ticket"
	"github.com/shopspring/decimal"
)

type CheckoutService interface {
	// Checkout validates the operator's ticket against current stock and
	// atomically persists the sale, or rejects with a specific reason. The
	// ticket is reset only on success.
	Checkout(ctx context.Context, userID uint, req dto.CheckoutRequest) (*model.Sale, error)
	// Cancel restores stock and flips a PAID sale to CANCELLED. Returns
	// ErrAlreadyCancelled (informational) on a second call.
	Cancel(ctx context.Context, saleID uint) error
	Get(ctx context.Context, saleID uint) (*dto.SaleResponse, error)
	GetModel(ctx context.Context, saleID uint) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type checkoutService struct {
	tickets  ticket.Store
	products repository.ProductRepository
	sales    repository.SaleRepository
	inv      pricing.Inventory
}

func NewCheckoutService(
	tickets ticket.Store,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	inv pricing.Inventory,
) CheckoutService {
	return &checkoutService{tickets: tickets, products: products, sales: sales, inv: inv}
}

// ── Checkout ─────────────────────────────────────────────────────────────────
// Preconditions, checked in order with the first failure short-circuiting:
//  1. ticket present and well-formed
//  2. ticket has items
//  3. a client is attached (registered or quick)
//  4. no payment shortfall
// Then one atomic transaction: lock products FOR UPDATE, re-validate stock
// (the pre-flight check above races concurrent checkouts), create the sale
// PAID with totals, snapshot items, decrement tracked stock, backfill the
// folio. Any error rolls everything back and leaves the ticket untouched.

func (s *checkoutService) Checkout(ctx context.Context, userID uint, req dto.CheckoutRequest) (*model.Sale, error) {
	key := ticket.Key(userID)
	t, err := s.tickets.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrInvalidTicket
	}

	// The checkout form resubmits the payment inputs; persist them so the
	// ticket matches what the operator confirmed, even when we reject below.
	applyPaymentInputs(t, req.DiscountPct, req.PaymentMethod, req.AmountTendered)
	if err := s.tickets.Set(ctx, key, t); err != nil {
		return nil, err
	}

	sum, err := pricing.Summarize(ctx, t, s.inv)
	if err != nil {
		return nil, err
	}

	if !sum.HasItems {
		return nil, ErrEmptyTicket
	}
	if !t.ClientAttached() {
		return nil, ErrClientRequired
	}
	if !sum.Shortfall.IsZero() {
		return nil, ErrInsufficientPayment
	}

	var sale model.Sale
	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(sum.Lines))
		for _, l := range sum.Lines {
			ids = append(ids, l.ProductID)
		}
		locked, err := s.products.LockByIDsTx(tx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]*model.Product, len(locked))
		for i := range locked {
			byID[locked[i].ID] = &locked[i]
		}

		// Mandatory stock re-check under lock: the summary was computed
		// before lock acquisition (time-of-check/time-of-use gap).
		for _, l := range sum.Lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return ErrProductNotFound
			}
			if p.Stock != nil && l.Qty > *p.Stock {
				return fmt.Errorf("stock insuficiente para: %s (disp: %d)", p.Name, *p.Stock)
			}
		}

		sale = model.Sale{
			Status:         model.SaleStatusPaid,
			UserID:         &userID,
			DiscountPct:    sum.DiscountPct,
			Subtotal:       sum.Subtotal,
			DiscountAmount: sum.DiscountAmount,
			Total:          sum.Total,
			PaymentMethod:  sum.PaymentMethod,
			AmountPaid:     sum.AmountTendered,
			ChangeAmount:   sum.Change,
		}

		// Exactly one client representation.
		if t.Client.Registered() {
			clientID := t.Client.ID
			sale.ClientID = &clientID
		} else {
			sale.QuickClientName = strings.TrimSpace(t.Client.Name)
			sale.QuickClientPhone = strings.TrimSpace(t.Client.Phone)
		}

		// Items snapshot name and price from the locked row, not the summary,
		// so the stored sale reflects the catalog at commit time.
		for _, l := range sum.Lines {
			p := byID[l.ProductID]
			unitPrice := money.Round2(p.SalePrice)
			lineTotal := money.Round2(unitPrice.Mul(decimal.NewFromInt(int64(l.Qty))))
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   unitPrice,
				Qty:         l.Qty,
				LineTotal:   lineTotal,
			})
		}

		if err := s.sales.CreateTx(ctx, tx, &sale); err != nil {
			return err
		}

		for _, l := range sum.Lines {
			p := byID[l.ProductID]
			if p.Stock == nil {
				continue
			}
			newStock := *p.Stock - l.Qty
			if err := s.products.UpdateStockTx(tx, p.ID, newStock); err != nil {
				return err
			}
		}

		sale.Folio = model.Folio(sale.ID)
		return s.sales.UpdateFolioTx(tx, sale.ID, sale.Folio)
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.tickets.Reset(ctx, key); err != nil {
		return nil, err
	}
	return &sale, nil
}

// ── Cancel ───────────────────────────────────────────────────────────────────

func (s *checkoutService) Cancel(ctx context.Context, saleID uint) error {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return ErrSaleNotFound
	}
	if sale.Status == model.SaleStatusCancelled {
		return ErrAlreadyCancelled
	}
	if sale.Status != model.SaleStatusPaid {
		return ErrNotPaid
	}

	return runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		// Re-read under lock: a concurrent cancellation may have won.
		locked, err := s.sales.LockByIDTx(tx, saleID)
		if err != nil {
			return ErrSaleNotFound
		}
		if locked.Status == model.SaleStatusCancelled {
			return ErrAlreadyCancelled
		}

		items, err := s.sales.LockItemsTx(tx, saleID)
		if err != nil {
			return err
		}
		ids := make([]uint, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		products, err := s.products.LockByIDsTx(tx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]*model.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		for _, it := range items {
			p, ok := byID[it.ProductID]
			if !ok || p.Stock == nil {
				continue
			}
			if err := s.products.UpdateStockTx(tx, p.ID, *p.Stock+it.Qty); err != nil {
				return err
			}
		}

		return s.sales.UpdateStatusTx(tx, saleID, model.SaleStatusCancelled)
	})
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *checkoutService) GetModel(ctx context.Context, saleID uint) (*model.Sale, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *checkoutService) Get(ctx context.Context, saleID uint) (*dto.SaleResponse, error) {
	sale, err := s.GetModel(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *checkoutService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleListItem, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToListItem(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToListItem(sale *model.Sale) *dto.SaleListItem {
	seller := ""
	if sale.User != nil {
		seller = sale.User.Username
	}
	return &dto.SaleListItem{
		ID:            sale.ID,
		Folio:         sale.Folio,
		Status:        sale.Status,
		Seller:        seller,
		ClientDisplay: sale.ClientDisplay(),
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     sale.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Qty:         it.Qty,
			LineTotal:   it.LineTotal,
		})
	}
	seller := ""
	if sale.User != nil {
		seller = sale.User.Username
	}
	phone := sale.QuickClientPhone
	if sale.ClientID != nil && sale.Client != nil {
		phone = sale.Client.Phone
	}
	return &dto.SaleResponse{
		ID:             sale.ID,
		Folio:          sale.Folio,
		Status:         sale.Status,
		Seller:         seller,
		ClientDisplay:  sale.ClientDisplay(),
		ClientPhone:    phone,
		Items:          items,
		Subtotal:       sale.Subtotal,
		DiscountPct:    sale.DiscountPct,
		DiscountAmount: sale.DiscountAmount,
		Total:          sale.Total,
		PaymentMethod:  sale.PaymentMethod,
		AmountPaid:     sale.AmountPaid,
		ChangeAmount:   sale.ChangeAmount,
		CreatedAt:      sale.CreatedAt.UTC().Format(time.RFC3339),
	}
}

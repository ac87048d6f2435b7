package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/money"
	"github.com/mishellCastillorb/Punto-Venta/internal/pricing"
	"github.com/mishellCastillorb/Punto-Venta/internal/repository"
	"github.com/mishellCastillorb/Punto-Venta/internal/ticket"
	"github.com/shopspring/decimal"
)

// TicketService mutates the per-operator ticket and recomputes the pricing
// read-model after every mutation. Malformed or missing session state is
// reinitialized before any mutation is applied.
type TicketService interface {
	Current(ctx context.Context, userID uint) (*dto.TicketSummaryResponse, error)
	Add(ctx context.Context, userID uint, productKey string) (*dto.TicketSummaryResponse, error)
	Decrement(ctx context.Context, userID uint, productKey string) (*dto.TicketSummaryResponse, error)
	Remove(ctx context.Context, userID uint, productKey string) (*dto.TicketSummaryResponse, error)
	Update(ctx context.Context, userID uint, req dto.UpdateTicketRequest) (*dto.TicketSummaryResponse, error)
	SetQuickClient(ctx context.Context, userID uint, name, phone string) (*dto.TicketSummaryResponse, error)
	SelectClient(ctx context.Context, userID uint, clientID uint) (*dto.TicketSummaryResponse, error)
	ClearClient(ctx context.Context, userID uint) (*dto.TicketSummaryResponse, error)
}

type ticketService struct {
	tickets  ticket.Store
	products repository.ProductRepository
	clients  repository.ClientRepository
	inv      pricing.Inventory
}

func NewTicketService(
	tickets ticket.Store,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	inv pricing.Inventory,
) TicketService {
	return &ticketService{tickets: tickets, products: products, clients: clients, inv: inv}
}

// load fetches the operator's ticket, reinitializing missing or malformed
// state so every mutation starts from a well-formed value.
func (s *ticketService) load(ctx context.Context, userID uint) (*ticket.Ticket, error) {
	t, err := s.tickets.Get(ctx, ticket.Key(userID))
	if err != nil {
		return nil, err
	}
	if t == nil {
		t = ticket.New()
	}
	return t, nil
}

func (s *ticketService) save(ctx context.Context, userID uint, t *ticket.Ticket) error {
	return s.tickets.Set(ctx, ticket.Key(userID), t)
}

func (s *ticketService) summarize(ctx context.Context, t *ticket.Ticket, warning string) (*dto.TicketSummaryResponse, error) {
	sum, err := pricing.Summarize(ctx, t, s.inv)
	if err != nil {
		return nil, err
	}
	resp := summaryToResponse(sum)
	resp.Warning = warning
	resp.ClientDisplay = s.clientDisplay(ctx, t)
	return resp, nil
}

func (s *ticketService) clientDisplay(ctx context.Context, t *ticket.Ticket) string {
	c := t.Client
	switch {
	case c.Registered():
		if cl, err := s.clients.FindByID(ctx, c.ID); err == nil {
			return cl.FullName()
		}
		return fmt.Sprintf("Cliente registrado (ID %d)", c.ID)
	case c.Quick():
		name := strings.TrimSpace(c.Name)
		if phone := strings.TrimSpace(c.Phone); phone != "" {
			return fmt.Sprintf("%s (%s)", name, phone)
		}
		return name
	default:
		return "Sin cliente"
	}
}

func (s *ticketService) Current(ctx context.Context, userID uint) (*dto.TicketSummaryResponse, error) {
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	// First visit materializes the empty ticket in the session store.
	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, "")
}

// Add increments a line by one, capped at the tracked stock. Products with
// zero stock or missing products are refused without mutating the ticket.
func (s *ticketService) Add(ctx context.Context, userID uint, productKey string) (*dto.TicketSummaryResponse, error) {
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseUint(strings.TrimSpace(productKey), 10, 64)
	if err != nil {
		return nil, ErrProductNotFound
	}
	p, err := s.products.FindByID(ctx, uint(id))
	if err != nil {
		return nil, ErrProductNotFound
	}

	newQty := t.Items[productKey] + 1
	warning := ""
	if p.Stock != nil {
		if *p.Stock <= 0 {
			return nil, ErrOutOfStock
		}
		if newQty > *p.Stock {
			newQty = *p.Stock
			warning = fmt.Sprintf("Stock máximo alcanzado (disponible: %d).", *p.Stock)
		}
	}
	if newQty < 1 {
		newQty = 1
	}
	t.SetQty(productKey, newQty)

	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, warning)
}

func (s *ticketService) Decrement(ctx context.Context, userID uint, productKey string) (*dto.TicketSummaryResponse, error) {
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	t.Decrement(productKey)
	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, "")
}

func (s *ticketService) Remove(ctx context.Context, userID uint, productKey string) (*dto.TicketSummaryResponse, error) {
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	t.Remove(productKey)
	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, "")
}

// Update normalizes and stores the payment inputs: discount clamped to
// [0,100] (unparsable → 0), payment method coerced to the enum, tendered
// amount stored verbatim for the pricing engine to parse.
func (s *ticketService) Update(ctx context.Context, userID uint, req dto.UpdateTicketRequest) (*dto.TicketSummaryResponse, error) {
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyPaymentInputs(t, req.DiscountPct, req.PaymentMethod, req.AmountTendered)
	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, "")
}

func (s *ticketService) SetQuickClient(ctx context.Context, userID uint, name, phone string) (*dto.TicketSummaryResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrQuickClientName
	}
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	t.Client = &ticket.ClientRef{Name: name, Phone: strings.TrimSpace(phone)}
	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, "")
}

func (s *ticketService) SelectClient(ctx context.Context, userID uint, clientID uint) (*dto.TicketSummaryResponse, error) {
	if _, err := s.clients.GetActive(ctx, clientID); err != nil {
		return nil, ErrClientNotFound
	}
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	t.Client = &ticket.ClientRef{ID: clientID}
	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, "")
}

func (s *ticketService) ClearClient(ctx context.Context, userID uint) (*dto.TicketSummaryResponse, error) {
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	t.Client = nil
	if err := s.save(ctx, userID, t); err != nil {
		return nil, err
	}
	return s.summarize(ctx, t, "")
}

// applyPaymentInputs writes normalized payment fields onto the ticket. The
// tendered amount is intentionally NOT clamped or parsed here — blank must
// survive round trips verbatim.
func applyPaymentInputs(t *ticket.Ticket, discountPct, method, tendered string) {
	pct := money.ClampPct(money.Parse(discountPct, decimal.Zero))
	t.DiscountPct = pct.String()
	t.PaymentMethod = model.NormalizePaymentMethod(method)
	t.AmountTendered = strings.TrimSpace(tendered)
}

func summaryToResponse(sum *pricing.Summary) *dto.TicketSummaryResponse {
	items := make([]dto.TicketLineResponse, 0, len(sum.Lines))
	for _, l := range sum.Lines {
		items = append(items, dto.TicketLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Qty:       l.Qty,
			LineTotal: l.LineTotal,
			Stock:     l.Stock,
		})
	}
	return &dto.TicketSummaryResponse{
		Items:             items,
		HasItems:          sum.HasItems,
		Subtotal:          sum.Subtotal,
		DiscountPct:       sum.DiscountPct,
		DiscountAmount:    sum.DiscountAmount,
		Total:             sum.Total,
		PaymentMethod:     sum.PaymentMethod,
		AmountTendered:    sum.AmountTendered,
		AmountTenderedRaw: sum.AmountTenderedRaw,
		Change:            sum.Change,
		Shortfall:         sum.Shortfall,
		CanCharge:         sum.CanCharge,
	}
}

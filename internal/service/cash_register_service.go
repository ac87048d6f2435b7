package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/money"
	"github.com/mishellCastillorb/Punto-Venta/internal/repository"
)

type CashRegisterService interface {
	Open(ctx context.Context, userID uint, req dto.OpenRegisterRequest) (*model.CashRegister, error)
	// Status reports live shift totals. Non-admin operators see only their
	// own sales in the per-method totals; admins see everyone plus the
	// per-operator breakdown.
	Status(ctx context.Context, userID uint, isAdmin bool) (*dto.RegisterStatusResponse, error)
	Close(ctx context.Context, userID uint, req dto.CloseRegisterRequest) (*dto.RegisterClosedResponse, error)
}

type cashRegisterService struct {
	registers repository.CashRegisterRepository
	sales     repository.SaleRepository
	users     repository.UserRepository
}

func NewCashRegisterService(
	registers repository.CashRegisterRepository,
	sales repository.SaleRepository,
	users repository.UserRepository,
) CashRegisterService {
	return &cashRegisterService{registers: registers, sales: sales, users: users}
}

func openedByName(cr *model.CashRegister) string {
	if cr.OpenedBy != nil {
		return cr.OpenedBy.Username
	}
	return ""
}

func (s *cashRegisterService) Open(ctx context.Context, userID uint, req dto.OpenRegisterRequest) (*model.CashRegister, error) {
	if existing, err := s.registers.FindOpen(ctx); err == nil && existing != nil {
		return nil, ErrRegisterOpen
	}
	cr := &model.CashRegister{
		OpenedByID:    userID,
		OpeningAmount: money.Round2(req.OpeningAmount),
		OpenedAt:      time.Now(),
	}
	if err := s.registers.Create(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

// shiftTotals sums PAID sales by payment method over [from, now].
type shiftTotals struct {
	cash, card, transfer, total decimal.Decimal
	byOperator                  map[string]decimal.Decimal
}

func (s *cashRegisterService) collect(ctx context.Context, from time.Time, userID *uint) (*shiftTotals, error) {
	sales, err := s.sales.FindPaidInWindow(ctx, from, time.Now(), userID)
	if err != nil {
		return nil, err
	}
	t := &shiftTotals{
		cash:       money.Zero,
		card:       money.Zero,
		transfer:   money.Zero,
		total:      money.Zero,
		byOperator: map[string]decimal.Decimal{},
	}
	for i := range sales {
		sale := &sales[i]
		switch sale.PaymentMethod {
		case model.PaymentCard:
			t.card = t.card.Add(sale.Total)
		case model.PaymentTransfer:
			t.transfer = t.transfer.Add(sale.Total)
		default:
			t.cash = t.cash.Add(sale.Total)
		}
		t.total = t.total.Add(sale.Total)

		name := "desconocido"
		if sale.User != nil {
			name = sale.User.Username
		} else if sale.UserID != nil {
			if u, err := s.users.FindByID(ctx, *sale.UserID); err == nil {
				name = u.Username
			}
		}
		prev, ok := t.byOperator[name]
		if !ok {
			prev = money.Zero
		}
		t.byOperator[name] = prev.Add(sale.Total)
	}
	return t, nil
}

func (s *cashRegisterService) Status(ctx context.Context, userID uint, isAdmin bool) (*dto.RegisterStatusResponse, error) {
	cr, err := s.registers.FindOpen(ctx)
	if err != nil {
		return nil, ErrNoOpenRegister
	}

	var scope *uint
	if !isAdmin {
		scope = &userID
	}
	totals, err := s.collect(ctx, cr.OpenedAt, scope)
	if err != nil {
		return nil, err
	}

	resp := &dto.RegisterStatusResponse{
		ID:            cr.ID,
		OpenedBy:      openedByName(cr),
		OpenedAt:      cr.OpenedAt.Format(time.RFC3339),
		OpeningAmount: cr.OpeningAmount,
		CashTotal:     totals.cash,
		CardTotal:     totals.card,
		TransferTotal: totals.transfer,
		TotalSales:    totals.total,
		IsClosed:      false,
	}
	if isAdmin {
		names := make([]string, 0, len(totals.byOperator))
		for name := range totals.byOperator {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			resp.ByOperator = append(resp.ByOperator, dto.OperatorTotal{
				Username: name,
				Total:    totals.byOperator[name],
			})
		}
	}
	return resp, nil
}

// Close reconciles the drawer: difference = counted cash minus expected cash
// sales. Opening float is informational and does not enter the expectation.
func (s *cashRegisterService) Close(ctx context.Context, userID uint, req dto.CloseRegisterRequest) (*dto.RegisterClosedResponse, error) {
	if _, err := s.registers.FindOpen(ctx); err != nil {
		return nil, ErrNoOpenRegister
	}
	if req.ClosingAmount.IsNegative() {
		return nil, ErrNegativeClosingAmount
	}

	// The register row is re-read under lock inside the transaction so two
	// concurrent closes cannot both pass the pre-check and reconcile twice.
	var cr *model.CashRegister
	now := time.Now()
	err := runTx(ctx, s.registers.DB(), func(tx *gorm.DB) error {
		locked, err := s.registers.LockOpenTx(tx)
		if err != nil {
			return ErrNoOpenRegister
		}
		cr = locked

		totals, err := s.collect(ctx, cr.OpenedAt, nil)
		if err != nil {
			return err
		}

		closing := money.Round2(req.ClosingAmount)
		cr.CashTotal = totals.cash
		cr.CardTotal = totals.card
		cr.TransferTotal = totals.transfer
		cr.TotalSales = totals.total
		cr.ClosingAmount = &closing
		cr.Difference = closing.Sub(totals.cash)
		cr.ClosedByID = &userID
		cr.ClosedAt = &now
		cr.IsClosed = true
		return s.registers.UpdateTx(tx, cr)
	})
	if err != nil {
		return nil, err
	}

	closedBy := ""
	if u, err := s.users.FindByID(ctx, userID); err == nil {
		closedBy = u.Username
	}
	closedAt := now.Format(time.RFC3339)
	return &dto.RegisterClosedResponse{
		ID:            cr.ID,
		OpenedAt:      cr.OpenedAt.Format(time.RFC3339),
		ClosedAt:      &closedAt,
		OpenedBy:      openedByName(cr),
		ClosedBy:      closedBy,
		OpeningAmount: cr.OpeningAmount,
		ClosingAmount: cr.ClosingAmount,
		CashTotal:     cr.CashTotal,
		CardTotal:     cr.CardTotal,
		TransferTotal: cr.TransferTotal,
		TotalSales:    cr.TotalSales,
		Difference:    cr.Difference,
	}, nil
}

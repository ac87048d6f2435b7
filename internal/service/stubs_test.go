package service

// In-memory repository stubs. Every stub returns DB() == nil so runTx
// exercises the service logic without a live Postgres.

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/pricing"
	"github.com/mishellCastillorb/Punto-Venta/internal/repository"
)

func intPtr(v int) *int { return &v }

// ── Products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uint]*model.Product
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func newStubProductRepo(products ...model.Product) *stubProductRepo {
	r := &stubProductRepo{products: map[uint]*model.Product{}}
	for i := range products {
		p := products[i]
		r.products[p.ID] = &p
	}
	return r
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductRepo) Search(_ context.Context, _ string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) LockByIDsTx(_ *gorm.DB, ids []uint) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uint, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = intPtr(stock)
	return nil
}

func (r *stubProductRepo) Snapshot(_ context.Context, keys []string) (map[string]pricing.ProductInfo, error) {
	out := make(map[string]pricing.ProductInfo, len(keys))
	for _, k := range keys {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		p, ok := r.products[uint(id)]
		if !ok || !p.IsActive {
			continue
		}
		out[k] = pricing.ProductInfo{ID: p.ID, Name: p.Name, Price: p.SalePrice, Stock: p.Stock}
	}
	return out, nil
}

// ── Clients ──────────────────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uint]*model.Client
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

func newStubClientRepo(clients ...model.Client) *stubClientRepo {
	r := &stubClientRepo{clients: map[uint]*model.Client{}}
	for i := range clients {
		c := clients[i]
		r.clients[c.ID] = &c
	}
	return r
}

func (r *stubClientRepo) FindByID(_ context.Context, id uint) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubClientRepo) GetActive(_ context.Context, id uint) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok || !c.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubClientRepo) Search(_ context.Context, _ string) ([]model.Client, error) {
	return nil, nil
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	cloned := *c
	r.clients[c.ID] = &cloned
	return nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales  map[uint]*model.Sale
	nextID uint
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: map[uint]*model.Sale{}, nextID: 1}
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func cloneSale(s *model.Sale) *model.Sale {
	cloned := *s
	cloned.Items = append([]model.SaleItem(nil), s.Items...)
	return &cloned
}

func (r *stubSaleRepo) CreateTx(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	s.ID = r.nextID
	r.nextID++
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	for i := range s.Items {
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = cloneSale(s)
	return nil
}

func (r *stubSaleRepo) UpdateFolioTx(_ *gorm.DB, id uint, folio string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Folio = folio
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uint) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneSale(s), nil
}

func (r *stubSaleRepo) LockByIDTx(_ *gorm.DB, id uint) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneSale(s), nil
}

func (r *stubSaleRepo) LockItemsTx(_ *gorm.DB, saleID uint) ([]model.SaleItem, error) {
	s, ok := r.sales[saleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return append([]model.SaleItem(nil), s.Items...), nil
}

func (r *stubSaleRepo) UpdateStatusTx(_ *gorm.DB, id uint, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if filter.Status != "" && filter.Status != "all" && s.Status != filter.Status {
			continue
		}
		out = append(out, *cloneSale(s))
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) FindPaidInWindow(_ context.Context, from, to time.Time, userID *uint) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.Status != model.SaleStatusPaid {
			continue
		}
		if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
			continue
		}
		if userID != nil && (s.UserID == nil || *s.UserID != *userID) {
			continue
		}
		out = append(out, *cloneSale(s))
	}
	return out, nil
}

// ── Users ────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uint]*model.User
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo(users ...model.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uint]*model.User{}}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

// ── Cash registers ───────────────────────────────────────────────────────────

type stubRegisterRepo struct {
	registers map[uint]*model.CashRegister
	nextID    uint
	// onLock runs at the start of LockOpenTx, standing in for work a
	// concurrent close commits between the pre-check and the lock.
	onLock func()
}

var _ repository.CashRegisterRepository = (*stubRegisterRepo)(nil)

func newStubRegisterRepo() *stubRegisterRepo {
	return &stubRegisterRepo{registers: map[uint]*model.CashRegister{}, nextID: 1}
}

func (r *stubRegisterRepo) Create(_ context.Context, cr *model.CashRegister) error {
	cr.ID = r.nextID
	r.nextID++
	cloned := *cr
	r.registers[cr.ID] = &cloned
	return nil
}

func (r *stubRegisterRepo) FindOpen(_ context.Context) (*model.CashRegister, error) {
	for _, cr := range r.registers {
		if !cr.IsClosed {
			cloned := *cr
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRegisterRepo) LockOpenTx(_ *gorm.DB) (*model.CashRegister, error) {
	if r.onLock != nil {
		r.onLock()
	}
	for _, cr := range r.registers {
		if !cr.IsClosed {
			cloned := *cr
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRegisterRepo) UpdateTx(_ *gorm.DB, cr *model.CashRegister) error {
	if _, ok := r.registers[cr.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *cr
	r.registers[cr.ID] = &cloned
	return nil
}

func (r *stubRegisterRepo) DB() *gorm.DB { return nil }

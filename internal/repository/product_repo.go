package repository

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/pricing"
)

// ProductRepository is the catalog access contract for the POS core.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	// Search implements the register quick-search: code prefix when the query
	// has letters, otherwise name-substring tokens of length >= 3 falling
	// back to >= 2. At most 20 rows.
	Search(ctx context.Context, query string) ([]model.Product, error)
	Create(ctx context.Context, p *model.Product) error

	// Used inside transactions — callers must pass the tx instance.
	LockByIDsTx(tx *gorm.DB, ids []uint) ([]model.Product, error)
	UpdateStockTx(tx *gorm.DB, id uint, stock int) error

	// Snapshot implements pricing.Inventory: keys that do not resolve to a
	// product are absent from the result (ghost-line policy).
	Snapshot(ctx context.Context, keys []string) (map[string]pricing.ProductInfo, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

var _ pricing.Inventory = (*productRepo)(nil)

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) Search(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	hasLetters := strings.IndexFunc(query, unicode.IsLetter) >= 0
	isDigitsOnly := strings.IndexFunc(query, func(r rune) bool { return !unicode.IsDigit(r) }) < 0

	var products []model.Product
	if hasLetters && !isDigitsOnly {
		err := r.db.WithContext(ctx).
			Where("UPPER(code) LIKE ?", strings.ToUpper(query)+"%").
			Limit(20).Find(&products).Error
		if err != nil {
			return nil, err
		}
		if len(products) > 0 {
			return products, nil
		}
	}

	tokens := searchTokens(query, 3)
	if len(tokens) == 0 {
		tokens = searchTokens(query, 2)
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	q := r.db.WithContext(ctx).Model(&model.Product{})
	nameQ := r.db.Where("name ILIKE ?", "%"+tokens[0]+"%")
	for _, t := range tokens[1:] {
		nameQ = nameQ.Or("name ILIKE ?", "%"+t+"%")
	}
	err := q.Where(nameQ).Limit(20).Find(&products).Error
	return products, err
}

// searchTokens splits a query into whitespace tokens of at least minLen runes.
func searchTokens(query string, minLen int) []string {
	var out []string
	for _, t := range strings.Fields(query) {
		if len([]rune(t)) >= minLen {
			out = append(out, t)
		}
	}
	return out
}

// LockByIDsTx does not filter on is_active: cancellations restore stock
// even for products deactivated after the sale.
func (r *productRepo) LockByIDsTx(tx *gorm.DB, ids []uint) ([]model.Product, error) {
	var products []model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, id uint, stock int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *productRepo) Snapshot(ctx context.Context, keys []string) (map[string]pricing.ProductInfo, error) {
	ids := make([]uint, 0, len(keys))
	for _, k := range keys {
		id, err := strconv.ParseUint(strings.TrimSpace(k), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	out := make(map[string]pricing.ProductInfo, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// Deactivated products are omitted so their ticket lines read as ghosts.
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, k := range keys {
		id, err := strconv.ParseUint(strings.TrimSpace(k), 10, 64)
		if err != nil {
			continue
		}
		p, ok := byID[uint(id)]
		if !ok {
			continue
		}
		out[k] = pricing.ProductInfo{ID: p.ID, Name: p.Name, Price: p.SalePrice, Stock: p.Stock}
	}
	return out, nil
}

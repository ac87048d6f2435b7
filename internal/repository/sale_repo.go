package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
)

type SaleRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	// UpdateFolioTx backfills the folio once the row id is known.
	UpdateFolioTx(tx *gorm.DB, id uint, folio string) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)

	// Cancellation path: lock the sale row and its items before mutating.
	LockByIDTx(tx *gorm.DB, id uint) (*model.Sale, error)
	LockItemsTx(tx *gorm.DB, saleID uint) ([]model.SaleItem, error)
	UpdateStatusTx(tx *gorm.DB, id uint, status string) error

	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	// FindPaidInWindow returns PAID sales created in [from, to], optionally
	// restricted to one operator. Used by cash register reconciliation.
	FindPaidInWindow(ctx context.Context, from, to time.Time, userID *uint) ([]model.Sale, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) UpdateFolioTx(tx *gorm.DB, id uint, folio string) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("folio", folio).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		Preload("Client").Preload("User").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) LockByIDTx(tx *gorm.DB, id uint) (*model.Sale, error) {
	var s model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	return &s, err
}

func (r *saleRepo) LockItemsTx(tx *gorm.DB, saleID uint) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sale_id = ?", saleID).Find(&items).Error
	return items, err
}

func (r *saleRepo) UpdateStatusTx(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("status", status).Error
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Seller != "" {
		q = q.Joins("JOIN users ON users.id = sales.user_id").
			Where("users.username ILIKE ?", "%"+filter.Seller+"%")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch filter.Period {
	case "yesterday":
		q = q.Where("created_at >= ? AND created_at < ?", today.AddDate(0, 0, -1), today)
	case "week":
		// Week starts Monday.
		offset := (int(now.Weekday()) + 6) % 7
		q = q.Where("created_at >= ?", today.AddDate(0, 0, -offset))
	case "month":
		q = q.Where("created_at >= ?", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	case "all":
	default: // today
		q = q.Where("created_at >= ?", today)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("User").Preload("Client").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) FindPaidInWindow(ctx context.Context, from, to time.Time, userID *uint) ([]model.Sale, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", model.SaleStatusPaid).
		Where("created_at >= ? AND created_at <= ?", from, to)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var sales []model.Sale
	err := q.Preload("User").Find(&sales).Error
	return sales, err
}

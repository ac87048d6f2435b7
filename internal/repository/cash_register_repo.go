package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mishellCastillorb/Punto-Venta/internal/model"
)

type CashRegisterRepository interface {
	Create(ctx context.Context, cr *model.CashRegister) error
	// FindOpen returns the single open register, or gorm.ErrRecordNotFound.
	FindOpen(ctx context.Context) (*model.CashRegister, error)
	// LockOpenTx re-reads the open register FOR UPDATE so the close runs
	// against a row no concurrent close can also claim.
	LockOpenTx(tx *gorm.DB) (*model.CashRegister, error)
	UpdateTx(tx *gorm.DB, cr *model.CashRegister) error
	DB() *gorm.DB
}

type cashRegisterRepo struct{ db *gorm.DB }

func NewCashRegisterRepository(db *gorm.DB) CashRegisterRepository {
	return &cashRegisterRepo{db: db}
}

func (r *cashRegisterRepo) Create(ctx context.Context, cr *model.CashRegister) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *cashRegisterRepo) FindOpen(ctx context.Context) (*model.CashRegister, error) {
	var cr model.CashRegister
	err := r.db.WithContext(ctx).Preload("OpenedBy").
		Where("is_closed = false").First(&cr).Error
	return &cr, err
}

func (r *cashRegisterRepo) LockOpenTx(tx *gorm.DB) (*model.CashRegister, error) {
	var cr model.CashRegister
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("OpenedBy").Where("is_closed = false").First(&cr).Error
	return &cr, err
}

func (r *cashRegisterRepo) UpdateTx(tx *gorm.DB, cr *model.CashRegister) error {
	return tx.Save(cr).Error
}

func (r *cashRegisterRepo) DB() *gorm.DB {
	return r.db
}

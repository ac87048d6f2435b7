package repository

import (
	"context"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/mishellCastillorb/Punto-Venta/internal/model"
)

type ClientRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Client, error)
	// GetActive resolves a client only when it is active; selecting an
	// inactive client for a ticket must fail.
	GetActive(ctx context.Context, id uint) (*model.Client, error)
	// Search matches name tokens and/or digit sequences against the phone.
	// Queries shorter than 2 characters return nothing. At most 20 rows.
	Search(ctx context.Context, query string) ([]model.Client, error)
	Create(ctx context.Context, c *model.Client) error
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clientRepo) GetActive(ctx context.Context, id uint) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = true", id).First(&c).Error
	return &c, err
}

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) Search(ctx context.Context, query string) ([]model.Client, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, nil
	}

	digits := digitsOf(query)
	hasLetters := strings.IndexFunc(query, unicode.IsLetter) >= 0

	var cond *gorm.DB
	if hasLetters {
		for _, t := range strings.Fields(query) {
			like := "%" + t + "%"
			tokenCond := r.db.Where("name ILIKE ?", like).
				Or("last_name ILIKE ?", like).
				Or("second_last_name ILIKE ?", like)
			if cond == nil {
				cond = tokenCond
			} else {
				cond = cond.Or(tokenCond)
			}
		}
	}
	if len(digits) >= 3 {
		phoneCond := r.db.Where("phone LIKE ?", "%"+digits+"%")
		if cond == nil {
			cond = phoneCond
		} else {
			cond = cond.Or(phoneCond)
		}
	}
	if cond == nil {
		return nil, nil
	}

	var clients []model.Client
	err := r.db.WithContext(ctx).Model(&model.Client{}).
		Where("is_active = true").Where(cond).
		Order("name ASC").Limit(20).Find(&clients).Error
	return clients, err
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

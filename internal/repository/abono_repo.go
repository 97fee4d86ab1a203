package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
)

type AbonoRepository interface {
	Create(ctx context.Context, a *model.Abono) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Abono, error)
	ListByPedido(ctx context.Context, pedidoID uuid.UUID) ([]model.Abono, error)
	// SumRegistradosByPedido totals the non-voided abonos of a pedido. Voided
	// abonos stay in the table but never count toward the paid amount.
	SumRegistradosByPedido(ctx context.Context, pedidoID uuid.UUID) (decimal.Decimal, error)
	Update(ctx context.Context, a *model.Abono) error
	DB() *gorm.DB
}

type abonoRepo struct{ db *gorm.DB }

func NewAbonoRepository(db *gorm.DB) AbonoRepository { return &abonoRepo{db: db} }

func (r *abonoRepo) DB() *gorm.DB { return r.db }

func (r *abonoRepo) Create(ctx context.Context, a *model.Abono) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *abonoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Abono, error) {
	var a model.Abono
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *abonoRepo) ListByPedido(ctx context.Context, pedidoID uuid.UUID) ([]model.Abono, error) {
	var abonos []model.Abono
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("created_at ASC").
		Find(&abonos).Error
	return abonos, err
}

func (r *abonoRepo) SumRegistradosByPedido(ctx context.Context, pedidoID uuid.UUID) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).Model(&model.Abono{}).
		Select("SUM(monto)").
		Where("pedido_id = ? AND estado = ?", pedidoID, model.AbonoRegistrado).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

func (r *abonoRepo) Update(ctx context.Context, a *model.Abono) error {
	return r.db.WithContext(ctx).Save(a).Error
}

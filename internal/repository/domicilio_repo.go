package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
)

type DomicilioRepository interface {
	Create(ctx context.Context, d *model.Domicilio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Domicilio, error)
	// FindActivoByPedido returns the pedido's non-cancelled domicilio, or
	// gorm.ErrRecordNotFound when none exists. A cancelled domicilio does not
	// block scheduling a replacement.
	FindActivoByPedido(ctx context.Context, pedidoID uuid.UUID) (*model.Domicilio, error)
	List(ctx context.Context, estado string, page, limit int) ([]model.Domicilio, int64, error)
	Update(ctx context.Context, d *model.Domicilio) error
}

type domicilioRepo struct{ db *gorm.DB }

func NewDomicilioRepository(db *gorm.DB) DomicilioRepository { return &domicilioRepo{db: db} }

func (r *domicilioRepo) Create(ctx context.Context, d *model.Domicilio) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *domicilioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Domicilio, error) {
	var d model.Domicilio
	err := r.db.WithContext(ctx).
		Preload("Pedido").
		Preload("Pedido.Cliente").
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *domicilioRepo) FindActivoByPedido(ctx context.Context, pedidoID uuid.UUID) (*model.Domicilio, error) {
	var d model.Domicilio
	err := r.db.WithContext(ctx).
		Where("pedido_id = ? AND estado <> ?", pedidoID, model.DomicilioCancelado).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *domicilioRepo) List(ctx context.Context, estado string, page, limit int) ([]model.Domicilio, int64, error) {
	var domicilios []model.Domicilio
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Domicilio{})
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Pedido").Preload("Pedido.Cliente").
		Order("fecha_programada ASC").Limit(limit).Offset(offset).
		Find(&domicilios).Error
	return domicilios, total, err
}

func (r *domicilioRepo) Update(ctx context.Context, d *model.Domicilio) error {
	return r.db.WithContext(ctx).Save(d).Error
}

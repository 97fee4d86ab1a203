package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is an inbound supplier transaction. Stock is only applied when the
// compra is completed, and a completed compra can only be voided with the
// explicit stock-reversal flag.
//
// Fecha is the business order date supplied by the caller; FechaCreacion is
// the record-created timestamp set by the store. Both are kept deliberately.
type Compra struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha         time.Time       `gorm:"not null"`
	FechaCreacion time.Time       `gorm:"column:fecha_creacion;autoCreateTime"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IVA           decimal.Decimal `gorm:"column:iva;type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Estado: "Pendiente" | "Completada" | "Anulada"
	Estado    string `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	UpdatedAt time.Time

	Proveedor *Proveedor   `gorm:"foreignKey:ProveedorID"`
	Items     []CompraItem `gorm:"foreignKey:CompraID"`
}

func (Compra) TableName() string { return "compras" }

// CompraItem is one line of a compra.
type CompraItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (CompraItem) TableName() string { return "compra_items" }

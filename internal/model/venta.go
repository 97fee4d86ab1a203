package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta records a committed commercial transaction. It is created exactly once
// per transaction; anulación is the only mutation it admits afterwards.
type Venta struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Tipo: "Directa" | "Por Pedido"
	Tipo      string     `gorm:"type:varchar(20);not null"`
	PedidoID  *uuid.UUID `gorm:"type:uuid;index"`
	ClienteID uuid.UUID  `gorm:"type:uuid;not null;index"`
	// MetodoPago: "efectivo" | "transferencia" | "tarjeta"
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Estado: "Completada" | "Pendiente" | "Anulada"
	Estado          string `gorm:"type:varchar(20);not null;default:'Completada'"`
	MotivoAnulacion *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Pedido  *Pedido     `gorm:"foreignKey:PedidoID"`
	Items   []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one committed line of a venta.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

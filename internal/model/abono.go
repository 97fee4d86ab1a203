package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Abono is an installment payment applied against a pedido's total.
// Append-only: the only mutation after creation is the transition to Anulado.
type Abono struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// MetodoPago: "efectivo" | "transferencia" | "tarjeta"
	MetodoPago string `gorm:"type:varchar(20);not null"`
	// Estado: "Registrado" | "Anulado"
	Estado    string `gorm:"type:varchar(20);not null;default:'Registrado'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Pedido  *Pedido  `gorm:"foreignKey:PedidoID"`
	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Abono) TableName() string { return "abonos" }

// Saldo is the balance projection of a pedido against its registered abonos.
// Pendiente = Total − Pagado and never goes negative.
type Saldo struct {
	Total     decimal.Decimal
	Pagado    decimal.Decimal
	Pendiente decimal.Decimal
}

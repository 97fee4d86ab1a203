package model

import (
	"time"

	"github.com/google/uuid"
)

// Domicilio is a scheduled home delivery tied to exactly one pedido.
// At most one non-cancelled domicilio may exist per pedido; the repository
// lookup-before-create enforces it.
type Domicilio struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Direccion       string    `gorm:"not null"`
	Repartidor      string    `gorm:"not null"`
	FechaProgramada time.Time `gorm:"not null"`
	// Estado: "Pendiente" | "En Camino" | "Entregado" | "Cancelado"
	Estado    string `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	Notas     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Pedido *Pedido `gorm:"foreignKey:PedidoID"`
}

func (Domicilio) TableName() string { return "domicilios" }

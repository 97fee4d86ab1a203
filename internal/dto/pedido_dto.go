package dto

import "github.com/shopspring/decimal"

type ItemPedidoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type CrearPedidoRequest struct {
	ClienteID    string              `json:"cliente_id"    validate:"required,uuid"`
	FechaEntrega string              `json:"fecha_entrega" validate:"required"` // YYYY-MM-DD
	Items        []ItemPedidoRequest `json:"items"         validate:"required,min=1,dive"`
}

// CheckoutCarritoRequest converts a cart session into a pedido.
type CheckoutCarritoRequest struct {
	ClienteID    string `json:"cliente_id"    validate:"required,uuid"`
	FechaEntrega string `json:"fecha_entrega" validate:"required"`
}

// ActualizarPedidoRequest patches an order. Nil fields are left untouched;
// a non-nil Items slice replaces the lines and recomputes the total.
type ActualizarPedidoRequest struct {
	FechaEntrega *string             `json:"fecha_entrega"`
	Items        []ItemPedidoRequest `json:"items" validate:"omitempty,min=1,dive"`
}

type CambiarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof='En Proceso' Completado"`
}

type PedidoFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Estado    string `form:"estado"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemPedidoResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID           string               `json:"id"`
	ClienteID    string               `json:"cliente_id"`
	Cliente      string               `json:"cliente,omitempty"`
	FechaEntrega string               `json:"fecha_entrega"`
	Items        []ItemPedidoResponse `json:"items"`
	Total        decimal.Decimal      `json:"total"`
	Estado       string               `json:"estado"`
	CreatedAt    string               `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaDirectaRequest struct {
	ClienteID  string             `json:"cliente_id"  validate:"required,uuid"`
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo transferencia tarjeta"`
}

type RegistrarVentaPorPedidoRequest struct {
	PedidoID   string `json:"pedido_id"   validate:"required,uuid"`
	MetodoPago string `json:"metodo_pago" validate:"required,oneof=efectivo transferencia tarjeta"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type VentaFilter struct {
	Fecha     string `form:"fecha"`  // YYYY-MM-DD; empty = today
	Estado    string `form:"estado"` // Completada | Anulada | all
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	Tipo       string              `json:"tipo"`
	PedidoID   *string             `json:"pedido_id,omitempty"`
	ClienteID  string              `json:"cliente_id"`
	MetodoPago string              `json:"metodo_pago"`
	Items      []ItemVentaResponse `json:"items"`
	Total      decimal.Decimal     `json:"total"`
	Estado     string              `json:"estado"`
	CreatedAt  string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

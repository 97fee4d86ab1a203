package dto

import "github.com/shopspring/decimal"

type ItemCompraRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type CrearCompraRequest struct {
	ProveedorID string              `json:"proveedor_id" validate:"required,uuid"`
	Fecha       string              `json:"fecha"        validate:"required"` // YYYY-MM-DD
	Items       []ItemCompraRequest `json:"items"        validate:"required,min=1,dive"`
}

// AnularCompraRequest voids a purchase. RevertirStock must be true to void a
// completed (stock-applied) compra; a pending one needs no reversal.
type AnularCompraRequest struct {
	Motivo        string `json:"motivo" validate:"required,min=5"`
	RevertirStock bool   `json:"revertir_stock"`
}

type CompraFilter struct {
	ProveedorID string `form:"proveedor_id" validate:"omitempty,uuid"`
	Estado      string `form:"estado"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemCompraResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CompraResponse struct {
	ID            string               `json:"id"`
	ProveedorID   string               `json:"proveedor_id"`
	Proveedor     string               `json:"proveedor,omitempty"`
	Fecha         string               `json:"fecha"`
	FechaCreacion string               `json:"fecha_creacion"`
	Items         []ItemCompraResponse `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	IVA           decimal.Decimal      `json:"iva"`
	Total         decimal.Decimal      `json:"total"`
	Estado        string               `json:"estado"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

package dto

import "github.com/shopspring/decimal"

type AgregarAlCarritoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"omitempty,min=1"`
}

type FijarCantidadRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	// Cantidad ≤ 0 removes the line.
	Cantidad int `json:"cantidad"`
}

type CarritoLineaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CarritoResponse carries the cart snapshot. Advertencia is the soft
// StockExceeded warning: when set, the requested change was rejected and the
// cart returned unchanged — this is not an error.
type CarritoResponse struct {
	SesionID    string                 `json:"sesion_id"`
	Lineas      []CarritoLineaResponse `json:"lineas"`
	Total       decimal.Decimal        `json:"total"`
	Advertencia *string                `json:"advertencia,omitempty"`
}

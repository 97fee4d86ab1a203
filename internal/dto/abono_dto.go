package dto

import "github.com/shopspring/decimal"

type RegistrarAbonoRequest struct {
	PedidoID   string          `json:"pedido_id"   validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"       validate:"required"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=efectivo transferencia tarjeta"`
}

type AbonoResponse struct {
	ID         string          `json:"id"`
	PedidoID   string          `json:"pedido_id"`
	ClienteID  string          `json:"cliente_id"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Estado     string          `json:"estado"`
	CreatedAt  string          `json:"created_at"`
}

// SaldoResponse is the balance projection of one pedido.
// Pendiente = Total − Pagado; never negative by invariant.
type SaldoResponse struct {
	PedidoID  string          `json:"pedido_id"`
	Total     decimal.Decimal `json:"total"`
	Pagado    decimal.Decimal `json:"pagado"`
	Pendiente decimal.Decimal `json:"pendiente"`
}

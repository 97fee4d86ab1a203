package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
)

// Linea is the shared line-item value type used by pedidos, ventas and
// compras. The same subtotal math serves all three so the arithmetic lives in
// exactly one place.
type Linea struct {
	ProductoID     uuid.UUID
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// CalcularLineas validates each (cantidad, precio) pair, fills in subtotals
// (cantidad × precio, exact decimal math) and returns the lines with their sum.
func CalcularLineas(lineas []Linea) ([]Linea, decimal.Decimal, error) {
	if len(lineas) == 0 {
		return nil, decimal.Zero, fmt.Errorf("se requiere al menos un item: %w", domerr.ErrValidacion)
	}
	total := decimal.Zero
	out := make([]Linea, len(lineas))
	for i, l := range lineas {
		if l.Cantidad <= 0 {
			return nil, decimal.Zero, fmt.Errorf("cantidad debe ser mayor a cero: %w", domerr.ErrValidacion)
		}
		if l.PrecioUnitario.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("precio unitario no puede ser negativo: %w", domerr.ErrValidacion)
		}
		l.Subtotal = l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
		total = total.Add(l.Subtotal)
		out[i] = l
	}
	return out, total, nil
}

// CalcularIVA applies the flat purchase tax: iva = subtotal × tasa%, rounded
// to the smallest currency denomination, total = subtotal + iva.
func CalcularIVA(subtotal decimal.Decimal, tasaPct int) (iva, total decimal.Decimal) {
	iva = subtotal.Mul(decimal.NewFromInt(int64(tasaPct))).Div(decimal.NewFromInt(100)).Round(2)
	return iva, subtotal.Add(iva)
}

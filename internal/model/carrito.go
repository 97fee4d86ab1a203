package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Carrito is the ephemeral pre-checkout cart. It is never persisted to the
// database: sessions live in Redis with a TTL, so an abandoned cart (and the
// soft hold it implies) expires on its own. Checkout converts it into a Pedido.
type Carrito struct {
	Lineas []CarritoLinea `json:"lineas"`
}

// CarritoLinea is one selected product with its price snapshot at the moment
// it entered the cart.
type CarritoLinea struct {
	ProductoID     uuid.UUID       `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
}

// Total sums cantidad × precio across the cart. Pure: no side effects.
func (c *Carrito) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lineas {
		total = total.Add(l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad))))
	}
	return total
}

// Buscar returns the index of the line holding productoID, or -1.
func (c *Carrito) Buscar(productoID uuid.UUID) int {
	for i, l := range c.Lineas {
		if l.ProductoID == productoID {
			return i
		}
	}
	return -1
}

package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
)

func TestCalcularLineas_TotalExacto(t *testing.T) {
	lineas, total, err := CalcularLineas([]Linea{
		{ProductoID: uuid.New(), Cantidad: 3, PrecioUnitario: decimal.NewFromInt(1000)},
		{ProductoID: uuid.New(), Cantidad: 2, PrecioUnitario: decimal.NewFromInt(4500)},
	})
	require.NoError(t, err)
	assert.Equal(t, "3000", lineas[0].Subtotal.String())
	assert.Equal(t, "9000", lineas[1].Subtotal.String())
	assert.Equal(t, "12000", total.String())
}

func TestCalcularLineas_SinDeriva(t *testing.T) {
	// 0.1 * 3 must be exactly 0.3 — decimal arithmetic, not binary floats.
	_, total, err := CalcularLineas([]Linea{
		{ProductoID: uuid.New(), Cantidad: 3, PrecioUnitario: decimal.RequireFromString("0.1")},
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("0.3")))
}

func TestCalcularLineas_CantidadInvalida(t *testing.T) {
	_, _, err := CalcularLineas([]Linea{
		{ProductoID: uuid.New(), Cantidad: 0, PrecioUnitario: decimal.NewFromInt(100)},
	})
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

func TestCalcularLineas_PrecioNegativo(t *testing.T) {
	_, _, err := CalcularLineas([]Linea{
		{ProductoID: uuid.New(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(-5)},
	})
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

func TestCalcularLineas_Vacio(t *testing.T) {
	_, _, err := CalcularLineas(nil)
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

func TestCalcularIVA(t *testing.T) {
	iva, total := CalcularIVA(decimal.NewFromInt(10000), 19)
	assert.Equal(t, "1900", iva.String())
	assert.Equal(t, "11900", total.String())
}

func TestCarritoTotal(t *testing.T) {
	c := &Carrito{Lineas: []CarritoLinea{
		{ProductoID: uuid.New(), PrecioUnitario: decimal.NewFromInt(2500), Cantidad: 2},
		{ProductoID: uuid.New(), PrecioUnitario: decimal.NewFromInt(1200), Cantidad: 1},
	}}
	assert.Equal(t, "6200", c.Total().String())
}

package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/service"
)

func buildProductoSvc() (service.ProductoService, *stubProductoRepo, *stubMovimientoRepo) {
	repo := newStubProductoRepo()
	movRepo := &stubMovimientoRepo{}
	svc := service.NewProductoService(repo, movRepo)
	return svc, repo, movRepo
}

func TestCrearProducto(t *testing.T) {
	svc, repo, _ := buildProductoSvc()

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Whisky Old Parr 750ml",
		Precio:      decimal.NewFromInt(135000),
		StockActual: 8,
		StockMinimo: 2,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Equal(t, 8, resp.StockActual)

	id := mustParseUUID(t, resp.ID)
	assert.Equal(t, "Whisky Old Parr 750ml", repo.productos[id].Nombre)
}

func TestCrearProducto_PrecioNegativo(t *testing.T) {
	svc, _, _ := buildProductoSvc()

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Whisky Old Parr 750ml",
		Precio: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

func TestAjustarStock_AplicaDeltaYRegistraMovimiento(t *testing.T) {
	svc, repo, movRepo := buildProductoSvc()
	p := seedProducto(repo, "Whisky Old Parr 750ml", 135000, 8, 2)

	resp, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta:  -3,
		Motivo: "botellas rotas en bodega",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.StockActual)
	assert.Equal(t, 5, repo.productos[p.ID].StockActual)

	require.Len(t, movRepo.movimientos, 1)
	mov := movRepo.movimientos[0]
	assert.Equal(t, "ajuste_manual", mov.Tipo)
	assert.Equal(t, -3, mov.Cantidad)
	assert.Equal(t, 8, mov.StockAnterior)
	assert.Equal(t, 5, mov.StockNuevo)
	assert.Equal(t, "botellas rotas en bodega", mov.Motivo)
}

func TestAjustarStock_RechazaStockNegativo(t *testing.T) {
	svc, repo, movRepo := buildProductoSvc()
	p := seedProducto(repo, "Whisky Old Parr 750ml", 135000, 2, 2)

	_, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta:  -5,
		Motivo: "conteo de inventario",
	})
	assert.ErrorIs(t, err, domerr.ErrStockInsuficiente)
	assert.Equal(t, 2, repo.productos[p.ID].StockActual)
	assert.Empty(t, movRepo.movimientos)
}

func TestDesactivarYReactivar(t *testing.T) {
	svc, repo, _ := buildProductoSvc()
	p := seedProducto(repo, "Whisky Old Parr 750ml", 135000, 8, 2)

	require.NoError(t, svc.Desactivar(context.Background(), p.ID))
	assert.False(t, repo.productos[p.ID].Activo)

	require.NoError(t, svc.Reactivar(context.Background(), p.ID))
	assert.True(t, repo.productos[p.ID].Activo)
}

func TestAlertasStock_SoloActivosEnElUmbral(t *testing.T) {
	svc, repo, _ := buildProductoSvc()
	seedProducto(repo, "Cerveza Águila 330ml", 2500, 4, 6)       // por debajo
	seedProducto(repo, "Ron Viejo de Caldas 750ml", 45000, 2, 2) // justo en el mínimo
	seedProducto(repo, "Whisky Old Parr 750ml", 135000, 8, 2)    // bien surtido
	agotado := seedProducto(repo, "Vino Gato Negro 750ml", 38000, 0, 3)
	agotado.Activo = false // inactivo no alerta

	alertas, err := svc.AlertasStock(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 2)

	nombres := []string{alertas[0].Nombre, alertas[1].Nombre}
	assert.Contains(t, nombres, "Cerveza Águila 330ml")
	assert.Contains(t, nombres, "Ron Viejo de Caldas 750ml")
}

func TestActualizarProducto_CamposParciales(t *testing.T) {
	svc, repo, _ := buildProductoSvc()
	p := seedProducto(repo, "Whisky Old Parr 750ml", 135000, 8, 2)

	nuevoPrecio := decimal.NewFromInt(142000)
	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{
		Precio: &nuevoPrecio,
	})
	require.NoError(t, err)
	assert.True(t, resp.Precio.Equal(nuevoPrecio))
	assert.Equal(t, "Whisky Old Parr 750ml", resp.Nombre)
	assert.Equal(t, 8, resp.StockActual)
}

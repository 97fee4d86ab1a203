package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/service"
)

func buildVentaSvc() (service.VentaService, *stubVentaRepo, *stubProductoRepo, *stubPedidoRepo, *stubClienteRepo, *stubMovimientoRepo) {
	productoRepo := newStubProductoRepo()
	ventaRepo := newStubVentaRepo()
	pedidoRepo := newStubPedidoRepo()
	clienteRepo := newStubClienteRepo()
	movRepo := &stubMovimientoRepo{}
	svc := service.NewVentaService(ventaRepo, productoRepo, pedidoRepo, clienteRepo, movRepo, nil)
	return svc, ventaRepo, productoRepo, pedidoRepo, clienteRepo, movRepo
}

func TestRegistrarDirecta_DescuentaStockYCalculaTotal(t *testing.T) {
	svc, _, productoRepo, _, clienteRepo, movRepo := buildVentaSvc()
	p := seedProducto(productoRepo, "Aguardiente Antioqueño 750ml", 1000, 10, 2)
	c := seedCliente(clienteRepo, "Marta Gómez")

	resp, err := svc.RegistrarDirecta(context.Background(), dto.RegistrarVentaDirectaRequest{
		ClienteID:  c.ID.String(),
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaCompletada, resp.Estado)
	assert.Equal(t, model.VentaDirecta, resp.Tipo)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(3000)), "total debe ser 3000, fue %s", resp.Total)
	assert.Equal(t, 7, productoRepo.productos[p.ID].StockActual)
	// un movimiento de salida por línea
	require.Len(t, movRepo.movimientos, 1)
	assert.Equal(t, "venta", movRepo.movimientos[0].Tipo)
	assert.Equal(t, -3, movRepo.movimientos[0].Cantidad)
}

func TestRegistrarDirecta_TotalExactoSinDeriva(t *testing.T) {
	svc, _, productoRepo, _, clienteRepo, _ := buildVentaSvc()
	c := seedCliente(clienteRepo, "Pedro Ruiz")
	// 0.1 * 3 == 0.3 exacto con decimal; con float64 sería 0.30000000000000004
	p := seedProducto(productoRepo, "Bolsa hielo", 0, 100, 5)
	productoRepo.productos[p.ID].Precio = decimal.RequireFromString("0.1")

	resp, err := svc.RegistrarDirecta(context.Background(), dto.RegistrarVentaDirectaRequest{
		ClienteID:  c.ID.String(),
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("0.3")))
}

func TestRegistrarDirecta_StockInsuficienteAtomico(t *testing.T) {
	svc, ventaRepo, productoRepo, _, clienteRepo, _ := buildVentaSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p1 := seedProducto(productoRepo, "Ron Medellín 750ml", 42000, 10, 2)
	p2 := seedProducto(productoRepo, "Cerveza Águila 330ml", 2500, 2, 6)

	// la segunda línea excede el stock: la primera debe revertirse
	_, err := svc.RegistrarDirecta(context.Background(), dto.RegistrarVentaDirectaRequest{
		ClienteID: c.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: p1.ID.String(), Cantidad: 4},
			{ProductoID: p2.ID.String(), Cantidad: 5},
		},
		MetodoPago: "tarjeta",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domerr.ErrStockInsuficiente)

	assert.Equal(t, 10, productoRepo.productos[p1.ID].StockActual, "línea previa debe compensarse")
	assert.Equal(t, 2, productoRepo.productos[p2.ID].StockActual)
	_ = ventaRepo
}

func TestAnular_RestauraStockUnaSolaVez(t *testing.T) {
	svc, ventaRepo, productoRepo, _, clienteRepo, movRepo := buildVentaSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p := seedProducto(productoRepo, "Aguardiente Antioqueño 750ml", 1000, 10, 2)

	resp, err := svc.RegistrarDirecta(context.Background(), dto.RegistrarVentaDirectaRequest{
		ClienteID:  c.ID.String(),
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 7, productoRepo.productos[p.ID].StockActual)

	ventaID := mustParseUUID(t, resp.ID)
	require.NoError(t, svc.Anular(context.Background(), ventaID, "cliente desistió"))

	assert.Equal(t, 10, productoRepo.productos[p.ID].StockActual)
	assert.Equal(t, model.VentaAnulada, ventaRepo.ventas[ventaID].Estado)

	// segunda anulación: rechazada sin tocar stock
	err = svc.Anular(context.Background(), ventaID, "doble clic")
	assert.ErrorIs(t, err, domerr.ErrYaAnulada)
	assert.Equal(t, 10, productoRepo.productos[p.ID].StockActual)

	// movimientos: venta + anulacion_venta, nada más
	require.Len(t, movRepo.movimientos, 2)
	assert.Equal(t, "anulacion_venta", movRepo.movimientos[1].Tipo)
}

func TestRegistrarPorPedido_UsaPreciosCapturadosYCompletaPedido(t *testing.T) {
	svc, _, productoRepo, pedidoRepo, clienteRepo, _ := buildVentaSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p := seedProducto(productoRepo, "Vino Gato Negro 750ml", 38000, 20, 3)

	// precio capturado distinto al actual del catálogo
	precioCapturado := decimal.NewFromInt(35000)
	pedido := &model.Pedido{
		ClienteID: c.ID,
		Total:     precioCapturado.Mul(decimal.NewFromInt(2)),
		Estado:    model.PedidoEnProceso,
		Items: []model.PedidoItem{{
			ProductoID:     p.ID,
			Cantidad:       2,
			PrecioUnitario: precioCapturado,
			Subtotal:       precioCapturado.Mul(decimal.NewFromInt(2)),
		}},
	}
	require.NoError(t, pedidoRepo.Create(context.Background(), pedido))

	resp, err := svc.RegistrarPorPedido(context.Background(), dto.RegistrarVentaPorPedidoRequest{
		PedidoID:   pedido.ID.String(),
		MetodoPago: "transferencia",
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaPorPedido, resp.Tipo)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(70000)), "debe facturar el precio capturado")
	assert.Equal(t, 18, productoRepo.productos[p.ID].StockActual)
	assert.Equal(t, model.PedidoCompletado, pedidoRepo.pedidos[pedido.ID].Estado)
}

func TestRegistrarPorPedido_PedidoCancelado(t *testing.T) {
	svc, _, _, pedidoRepo, clienteRepo, _ := buildVentaSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	pedido := &model.Pedido{ClienteID: c.ID, Estado: model.PedidoCancelado}
	require.NoError(t, pedidoRepo.Create(context.Background(), pedido))

	_, err := svc.RegistrarPorPedido(context.Background(), dto.RegistrarVentaPorPedidoRequest{
		PedidoID:   pedido.ID.String(),
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, domerr.ErrPedidoBloqueado)
}

func TestRegistrarDirecta_ClienteInexistente(t *testing.T) {
	svc, _, productoRepo, _, _, _ := buildVentaSvc()
	p := seedProducto(productoRepo, "Cerveza Club Colombia 330ml", 3200, 12, 4)

	_, err := svc.RegistrarDirecta(context.Background(), dto.RegistrarVentaDirectaRequest{
		ClienteID:  "11111111-2222-3333-4444-555555555555",
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, domerr.ErrNotFound)
}

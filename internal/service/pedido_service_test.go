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

func buildPedidoSvc() (service.PedidoService, *stubPedidoRepo, *stubProductoRepo, *stubClienteRepo, *stubCarritoStore) {
	pedidoRepo := newStubPedidoRepo()
	productoRepo := newStubProductoRepo()
	clienteRepo := newStubClienteRepo()
	carrito := newStubCarritoStore()
	svc := service.NewPedidoService(pedidoRepo, productoRepo, clienteRepo, carrito)
	return svc, pedidoRepo, productoRepo, clienteRepo, carrito
}

func TestCrearPedido_CapturaPreciosYTotal(t *testing.T) {
	svc, _, productoRepo, clienteRepo, _ := buildPedidoSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p1 := seedProducto(productoRepo, "Ron Medellín 750ml", 42000, 10, 2)
	p2 := seedProducto(productoRepo, "Cerveza Águila 330ml", 2500, 30, 6)

	resp, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:    c.ID.String(),
		FechaEntrega: "2026-09-05",
		Items: []dto.ItemPedidoRequest{
			{ProductoID: p1.ID.String(), Cantidad: 1},
			{ProductoID: p2.ID.String(), Cantidad: 6},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.PedidoPendiente, resp.Estado)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(57000)), "42000 + 6×2500")
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].PrecioUnitario.Equal(decimal.NewFromInt(42000)))

	// crear un pedido no mueve stock: la venta lo hará
	assert.Equal(t, 10, productoRepo.productos[p1.ID].StockActual)
	assert.Equal(t, 30, productoRepo.productos[p2.ID].StockActual)
}

func TestCrearPedido_CantidadInvalida(t *testing.T) {
	svc, _, productoRepo, clienteRepo, _ := buildPedidoSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p := seedProducto(productoRepo, "Ron Medellín 750ml", 42000, 10, 2)

	_, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:    c.ID.String(),
		FechaEntrega: "2026-09-05",
		Items:        []dto.ItemPedidoRequest{{ProductoID: p.ID.String(), Cantidad: 0}},
	})
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

func TestCancelarPedido_BloqueaEdicionesPosteriores(t *testing.T) {
	svc, _, productoRepo, clienteRepo, _ := buildPedidoSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p := seedProducto(productoRepo, "Ron Medellín 750ml", 42000, 10, 2)

	resp, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:    c.ID.String(),
		FechaEntrega: "2026-09-05",
		Items:        []dto.ItemPedidoRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
	})
	require.NoError(t, err)
	pedidoID := mustParseUUID(t, resp.ID)

	require.NoError(t, svc.Cancelar(context.Background(), pedidoID))

	// cancelar dos veces: reportado, no aplicado
	assert.ErrorIs(t, svc.Cancelar(context.Background(), pedidoID), domerr.ErrYaCancelado)

	// toda edición posterior queda bloqueada
	nuevaFecha := "2026-09-10"
	_, err = svc.Actualizar(context.Background(), pedidoID, dto.ActualizarPedidoRequest{FechaEntrega: &nuevaFecha})
	assert.ErrorIs(t, err, domerr.ErrPedidoBloqueado)

	_, err = svc.CambiarEstado(context.Background(), pedidoID, model.PedidoEnProceso)
	assert.ErrorIs(t, err, domerr.ErrPedidoBloqueado)
}

func TestCambiarEstado_SoloHaciaAdelante(t *testing.T) {
	svc, pedidoRepo, productoRepo, clienteRepo, _ := buildPedidoSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p := seedProducto(productoRepo, "Ron Medellín 750ml", 42000, 10, 2)

	resp, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:    c.ID.String(),
		FechaEntrega: "2026-09-05",
		Items:        []dto.ItemPedidoRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
	})
	require.NoError(t, err)
	pedidoID := mustParseUUID(t, resp.ID)

	_, err = svc.CambiarEstado(context.Background(), pedidoID, model.PedidoEnProceso)
	require.NoError(t, err)
	assert.Equal(t, model.PedidoEnProceso, pedidoRepo.pedidos[pedidoID].Estado)

	// retroceso rechazado
	_, err = svc.CambiarEstado(context.Background(), pedidoID, model.PedidoPendiente)
	assert.ErrorIs(t, err, domerr.ErrTransicionInvalida)

	_, err = svc.CambiarEstado(context.Background(), pedidoID, model.PedidoCompletado)
	require.NoError(t, err)
}

func TestActualizarPedido_RecalculaTotal(t *testing.T) {
	svc, _, productoRepo, clienteRepo, _ := buildPedidoSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p := seedProducto(productoRepo, "Ron Medellín 750ml", 42000, 10, 2)

	resp, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:    c.ID.String(),
		FechaEntrega: "2026-09-05",
		Items:        []dto.ItemPedidoRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
	})
	require.NoError(t, err)
	pedidoID := mustParseUUID(t, resp.ID)

	actualizado, err := svc.Actualizar(context.Background(), pedidoID, dto.ActualizarPedidoRequest{
		Items: []dto.ItemPedidoRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
	})
	require.NoError(t, err)
	assert.True(t, actualizado.Total.Equal(decimal.NewFromInt(126000)))
}

func TestCrearDesdeCarrito_ConvierteYVacia(t *testing.T) {
	svc, pedidoRepo, productoRepo, clienteRepo, carrito := buildPedidoSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")
	p := seedProducto(productoRepo, "Vino Gato Negro 750ml", 38000, 20, 3)

	require.NoError(t, carrito.Save(context.Background(), "vendedor-1", &model.Carrito{
		Lineas: []model.CarritoLinea{{
			ProductoID:     p.ID,
			Nombre:         p.Nombre,
			PrecioUnitario: p.Precio,
			Cantidad:       2,
		}},
	}))

	resp, err := svc.CrearDesdeCarrito(context.Background(), "vendedor-1", dto.CheckoutCarritoRequest{
		ClienteID:    c.ID.String(),
		FechaEntrega: "2026-09-05",
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(76000)))
	assert.Len(t, pedidoRepo.pedidos, 1)

	// el carrito queda vacío tras el checkout
	vacio, err := carrito.Get(context.Background(), "vendedor-1")
	require.NoError(t, err)
	assert.Empty(t, vacio.Lineas)
}

func TestCrearDesdeCarrito_CarritoVacio(t *testing.T) {
	svc, _, _, clienteRepo, _ := buildPedidoSvc()
	c := seedCliente(clienteRepo, "Marta Gómez")

	_, err := svc.CrearDesdeCarrito(context.Background(), "vendedor-1", dto.CheckoutCarritoRequest{
		ClienteID:    c.ID.String(),
		FechaEntrega: "2026-09-05",
	})
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

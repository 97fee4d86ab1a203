package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/service"
)

func buildDomicilioSvc() (service.DomicilioService, *stubDomicilioRepo, *stubPedidoRepo) {
	domicilioRepo := newStubDomicilioRepo()
	pedidoRepo := newStubPedidoRepo()
	svc := service.NewDomicilioService(domicilioRepo, pedidoRepo)
	return svc, domicilioRepo, pedidoRepo
}

func seedPedidoPendiente(r *stubPedidoRepo) *model.Pedido {
	p := &model.Pedido{
		ID:        uuid.New(),
		ClienteID: uuid.New(),
		Estado:    model.PedidoPendiente,
	}
	r.pedidos[p.ID] = p
	return p
}

func crearDomicilioReq(pedidoID uuid.UUID) dto.CrearDomicilioRequest {
	return dto.CrearDomicilioRequest{
		PedidoID:        pedidoID.String(),
		Direccion:       "Calle 45 #12-30, Manizales",
		Repartidor:      "Julián Ríos",
		FechaProgramada: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}
}

func TestCrearDomicilio_UnoActivoPorPedido(t *testing.T) {
	svc, _, pedidoRepo := buildDomicilioSvc()
	pedido := seedPedidoPendiente(pedidoRepo)

	resp, err := svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	require.NoError(t, err)
	assert.Equal(t, model.DomicilioPendiente, resp.Estado)

	// el segundo intento para el mismo pedido se rechaza
	_, err = svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	assert.ErrorIs(t, err, domerr.ErrDomicilioExistente)
}

func TestCrearDomicilio_CanceladoPermiteReemplazo(t *testing.T) {
	svc, _, pedidoRepo := buildDomicilioSvc()
	pedido := seedPedidoPendiente(pedidoRepo)

	resp, err := svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	require.NoError(t, err)

	_, err = svc.ActualizarEstado(context.Background(), mustParseUUID(t, resp.ID), model.DomicilioCancelado)
	require.NoError(t, err)

	// un domicilio cancelado no cuenta como activo
	reemplazo, err := svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	require.NoError(t, err)
	assert.NotEqual(t, resp.ID, reemplazo.ID)
}

func TestCrearDomicilio_PedidoCancelado(t *testing.T) {
	svc, _, pedidoRepo := buildDomicilioSvc()
	pedido := seedPedidoPendiente(pedidoRepo)
	pedido.Estado = model.PedidoCancelado

	_, err := svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	assert.ErrorIs(t, err, domerr.ErrPedidoBloqueado)
}

func TestCrearDomicilio_FechaInvalida(t *testing.T) {
	svc, _, pedidoRepo := buildDomicilioSvc()
	pedido := seedPedidoPendiente(pedidoRepo)

	req := crearDomicilioReq(pedido.ID)
	req.FechaProgramada = "2026-09-05" // falta la hora
	_, err := svc.Crear(context.Background(), req)
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

func TestActualizarEstadoDomicilio_SoloHaciaAdelante(t *testing.T) {
	svc, _, pedidoRepo := buildDomicilioSvc()
	pedido := seedPedidoPendiente(pedidoRepo)

	resp, err := svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	require.NoError(t, err)
	id := mustParseUUID(t, resp.ID)

	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioEnCamino)
	require.NoError(t, err)

	// retroceso rechazado
	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioPendiente)
	assert.ErrorIs(t, err, domerr.ErrTransicionInvalida)

	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioEntregado)
	require.NoError(t, err)
}

func TestActualizarEstadoDomicilio_TerminalesSonDeSoloLectura(t *testing.T) {
	svc, _, pedidoRepo := buildDomicilioSvc()
	pedido := seedPedidoPendiente(pedidoRepo)

	resp, err := svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	require.NoError(t, err)
	id := mustParseUUID(t, resp.ID)

	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioEnCamino)
	require.NoError(t, err)
	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioEntregado)
	require.NoError(t, err)

	// entregado es terminal, incluso para cancelar
	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioCancelado)
	assert.ErrorIs(t, err, domerr.ErrTransicionInvalida)
}

func TestActualizarEstadoDomicilio_CancelarDesdeEnCamino(t *testing.T) {
	svc, domicilioRepo, pedidoRepo := buildDomicilioSvc()
	pedido := seedPedidoPendiente(pedidoRepo)

	resp, err := svc.Crear(context.Background(), crearDomicilioReq(pedido.ID))
	require.NoError(t, err)
	id := mustParseUUID(t, resp.ID)

	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioEnCamino)
	require.NoError(t, err)
	_, err = svc.ActualizarEstado(context.Background(), id, model.DomicilioCancelado)
	require.NoError(t, err)
	assert.Equal(t, model.DomicilioCancelado, domicilioRepo.domicilios[id].Estado)
}

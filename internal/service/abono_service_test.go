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

func buildAbonoSvc() (service.AbonoService, *stubAbonoRepo, *stubPedidoRepo, *stubClienteRepo) {
	abonoRepo := newStubAbonoRepo()
	pedidoRepo := newStubPedidoRepo()
	clienteRepo := newStubClienteRepo()
	svc := service.NewAbonoService(abonoRepo, pedidoRepo, clienteRepo, nil)
	return svc, abonoRepo, pedidoRepo, clienteRepo
}

func seedPedidoConTotal(t *testing.T, pedidoRepo *stubPedidoRepo, clienteRepo *stubClienteRepo, total int64) *model.Pedido {
	t.Helper()
	c := seedCliente(clienteRepo, "Marta Gómez")
	pedido := &model.Pedido{
		ClienteID: c.ID,
		Total:     decimal.NewFromInt(total),
		Estado:    model.PedidoPendiente,
	}
	require.NoError(t, pedidoRepo.Create(context.Background(), pedido))
	return pedido
}

func TestRegistrarAbono_ActualizaSaldo(t *testing.T) {
	svc, _, pedidoRepo, clienteRepo := buildAbonoSvc()
	pedido := seedPedidoConTotal(t, pedidoRepo, clienteRepo, 50000)

	_, err := svc.Registrar(context.Background(), dto.RegistrarAbonoRequest{
		PedidoID:   pedido.ID.String(),
		Monto:      decimal.NewFromInt(30000),
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	saldo, err := svc.Saldo(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Pagado.Equal(decimal.NewFromInt(30000)))
	assert.True(t, saldo.Pendiente.Equal(decimal.NewFromInt(20000)))
}

func TestRegistrarAbono_SobrepagoSinEstadoParcial(t *testing.T) {
	svc, abonoRepo, pedidoRepo, clienteRepo := buildAbonoSvc()
	pedido := seedPedidoConTotal(t, pedidoRepo, clienteRepo, 50000)

	_, err := svc.Registrar(context.Background(), dto.RegistrarAbonoRequest{
		PedidoID:   pedido.ID.String(),
		Monto:      decimal.NewFromInt(30000),
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	// 25000 > saldo de 20000: rechazado, sin abono fantasma
	_, err = svc.Registrar(context.Background(), dto.RegistrarAbonoRequest{
		PedidoID:   pedido.ID.String(),
		Monto:      decimal.NewFromInt(25000),
		MetodoPago: "transferencia",
	})
	assert.ErrorIs(t, err, domerr.ErrSobrepago)
	assert.Len(t, abonoRepo.abonos, 1)

	saldo, err := svc.Saldo(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Pendiente.Equal(decimal.NewFromInt(20000)), "el saldo no debe moverse tras el rechazo")
}

func TestRegistrarAbono_MontoExactoDelSaldo(t *testing.T) {
	svc, _, pedidoRepo, clienteRepo := buildAbonoSvc()
	pedido := seedPedidoConTotal(t, pedidoRepo, clienteRepo, 50000)

	_, err := svc.Registrar(context.Background(), dto.RegistrarAbonoRequest{
		PedidoID:   pedido.ID.String(),
		Monto:      decimal.NewFromInt(50000),
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	saldo, err := svc.Saldo(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Pendiente.IsZero())
}

func TestRegistrarAbono_MontoNoPositivo(t *testing.T) {
	svc, _, pedidoRepo, clienteRepo := buildAbonoSvc()
	pedido := seedPedidoConTotal(t, pedidoRepo, clienteRepo, 50000)

	_, err := svc.Registrar(context.Background(), dto.RegistrarAbonoRequest{
		PedidoID:   pedido.ID.String(),
		Monto:      decimal.Zero,
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, domerr.ErrValidacion)
}

func TestAnularAbono_LiberaSaldoYRechazaDoble(t *testing.T) {
	svc, _, pedidoRepo, clienteRepo := buildAbonoSvc()
	pedido := seedPedidoConTotal(t, pedidoRepo, clienteRepo, 50000)

	resp, err := svc.Registrar(context.Background(), dto.RegistrarAbonoRequest{
		PedidoID:   pedido.ID.String(),
		Monto:      decimal.NewFromInt(30000),
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	abonoID := mustParseUUID(t, resp.ID)
	require.NoError(t, svc.Anular(context.Background(), abonoID))

	// el abono anulado deja de contar para el saldo
	saldo, err := svc.Saldo(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Pagado.IsZero())
	assert.True(t, saldo.Pendiente.Equal(decimal.NewFromInt(50000)))

	assert.ErrorIs(t, svc.Anular(context.Background(), abonoID), domerr.ErrYaAnulada)
}

func TestRegistrarAbono_PedidoCancelado(t *testing.T) {
	svc, _, pedidoRepo, clienteRepo := buildAbonoSvc()
	pedido := seedPedidoConTotal(t, pedidoRepo, clienteRepo, 50000)
	pedido.Estado = model.PedidoCancelado

	_, err := svc.Registrar(context.Background(), dto.RegistrarAbonoRequest{
		PedidoID:   pedido.ID.String(),
		Monto:      decimal.NewFromInt(1000),
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, domerr.ErrPedidoBloqueado)
}

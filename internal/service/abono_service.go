package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/worker"
)

// AbonoService keeps the installment ledger of pedidos. The invariant it
// defends: the sum of registered (non-voided) abonos never exceeds the
// pedido's total. A rejected abono leaves no trace.
type AbonoService interface {
	Registrar(ctx context.Context, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	Saldo(ctx context.Context, pedidoID uuid.UUID) (*dto.SaldoResponse, error)
	ListarPorPedido(ctx context.Context, pedidoID uuid.UUID) ([]dto.AbonoResponse, error)
}

type abonoService struct {
	repo        repository.AbonoRepository
	pedidoRepo  repository.PedidoRepository
	clienteRepo repository.ClienteRepository
	dispatcher  *worker.Dispatcher
}

func NewAbonoService(
	repo repository.AbonoRepository,
	pedidoRepo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
) AbonoService {
	return &abonoService{repo: repo, pedidoRepo: pedidoRepo, clienteRepo: clienteRepo, dispatcher: dispatcher}
}

func (s *abonoService) Registrar(ctx context.Context, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("monto debe ser mayor a cero: %w", domerr.ErrValidacion)
	}
	pedidoID, err := uuid.Parse(req.PedidoID)
	if err != nil {
		return nil, fmt.Errorf("pedido_id inválido: %w", domerr.ErrValidacion)
	}
	pedido, err := s.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("pedido %s: %w", req.PedidoID, domerr.ErrNotFound)
	}
	if pedido.Estado == model.PedidoCancelado {
		return nil, domerr.ErrPedidoBloqueado
	}

	pagado, err := s.repo.SumRegistradosByPedido(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if req.Monto.Add(pagado).GreaterThan(pedido.Total) {
		pendiente := pedido.Total.Sub(pagado)
		return nil, fmt.Errorf("saldo pendiente %s, abono %s: %w",
			pendiente.StringFixed(2), req.Monto.StringFixed(2), domerr.ErrSobrepago)
	}

	abono := model.Abono{
		PedidoID:   pedidoID,
		ClienteID:  pedido.ClienteID,
		Monto:      req.Monto,
		MetodoPago: req.MetodoPago,
		Estado:     model.AbonoRegistrado,
	}
	if err := s.repo.Create(ctx, &abono); err != nil {
		return nil, fmt.Errorf("registrar abono: %w", err)
	}

	s.encolarRecibo(ctx, &abono, pedido.ClienteID)
	return abonoToResponse(&abono), nil
}

func (s *abonoService) Anular(ctx context.Context, id uuid.UUID) error {
	abono, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("abono %s: %w", id, domerr.ErrNotFound)
	}
	if abono.Estado == model.AbonoAnulado {
		return domerr.ErrYaAnulada
	}
	// Voiding only shrinks the paid aggregate; the pedido total is untouched.
	abono.Estado = model.AbonoAnulado
	return s.repo.Update(ctx, abono)
}

func (s *abonoService) Saldo(ctx context.Context, pedidoID uuid.UUID) (*dto.SaldoResponse, error) {
	pedido, err := s.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("pedido %s: %w", pedidoID, domerr.ErrNotFound)
	}
	pagado, err := s.repo.SumRegistradosByPedido(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	pendiente := pedido.Total.Sub(pagado)
	if pendiente.IsNegative() {
		pendiente = decimal.Zero
	}
	return &dto.SaldoResponse{
		PedidoID:  pedidoID.String(),
		Total:     pedido.Total,
		Pagado:    pagado,
		Pendiente: pendiente,
	}, nil
}

func (s *abonoService) ListarPorPedido(ctx context.Context, pedidoID uuid.UUID) ([]dto.AbonoResponse, error) {
	if _, err := s.pedidoRepo.FindByID(ctx, pedidoID); err != nil {
		return nil, fmt.Errorf("pedido %s: %w", pedidoID, domerr.ErrNotFound)
	}
	abonos, err := s.repo.ListByPedido(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AbonoResponse, 0, len(abonos))
	for i := range abonos {
		resp = append(resp, *abonoToResponse(&abonos[i]))
	}
	return resp, nil
}

func (s *abonoService) encolarRecibo(ctx context.Context, abono *model.Abono, clienteID uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.ReciboJobPayload{
		Tipo:         worker.ReciboAbono,
		ReferenciaID: abono.ID.String(),
	}
	if cliente, err := s.clienteRepo.FindByID(ctx, clienteID); err == nil && cliente.Email != nil && *cliente.Email != "" {
		payload.ClienteEmail = cliente.Email
	}
	_ = s.dispatcher.EnqueueRecibo(ctx, payload)
}

func abonoToResponse(a *model.Abono) *dto.AbonoResponse {
	return &dto.AbonoResponse{
		ID:         a.ID.String(),
		PedidoID:   a.PedidoID.String(),
		ClienteID:  a.ClienteID.String(),
		Monto:      a.Monto,
		MetodoPago: a.MetodoPago,
		Estado:     a.Estado,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

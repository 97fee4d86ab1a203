package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
)

// DomicilioService schedules home deliveries. One non-cancelled domicilio per
// pedido; the status machine only moves forward:
// Pendiente → En Camino → Entregado, with Cancelado reachable from any
// non-terminal state.
type DomicilioService interface {
	Crear(ctx context.Context, req dto.CrearDomicilioRequest) (*dto.DomicilioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.DomicilioResponse, error)
	Listar(ctx context.Context, filter dto.DomicilioFilter) (*dto.DomicilioListResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.DomicilioResponse, error)
}

type domicilioService struct {
	repo       repository.DomicilioRepository
	pedidoRepo repository.PedidoRepository
}

func NewDomicilioService(repo repository.DomicilioRepository, pedidoRepo repository.PedidoRepository) DomicilioService {
	return &domicilioService{repo: repo, pedidoRepo: pedidoRepo}
}

var ordenEstadoDomicilio = map[string]int{
	model.DomicilioPendiente: 0,
	model.DomicilioEnCamino:  1,
	model.DomicilioEntregado: 2,
}

func (s *domicilioService) Crear(ctx context.Context, req dto.CrearDomicilioRequest) (*dto.DomicilioResponse, error) {
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
	fecha, err := time.Parse(time.RFC3339, req.FechaProgramada)
	if err != nil {
		return nil, fmt.Errorf("fecha_programada inválida (RFC 3339): %w", domerr.ErrValidacion)
	}

	// A cancelled domicilio does not block a replacement.
	if _, err := s.repo.FindActivoByPedido(ctx, pedidoID); err == nil {
		return nil, domerr.ErrDomicilioExistente
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	d := model.Domicilio{
		PedidoID:        pedidoID,
		Direccion:       req.Direccion,
		Repartidor:      req.Repartidor,
		FechaProgramada: fecha,
		Estado:          model.DomicilioPendiente,
		Notas:           req.Notas,
	}
	if err := s.repo.Create(ctx, &d); err != nil {
		return nil, fmt.Errorf("crear domicilio: %w", err)
	}
	return domicilioToResponse(&d), nil
}

func (s *domicilioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.DomicilioResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("domicilio %s: %w", id, domerr.ErrNotFound)
	}
	return domicilioToResponse(d), nil
}

func (s *domicilioService) Listar(ctx context.Context, filter dto.DomicilioFilter) (*dto.DomicilioListResponse, error) {
	domicilios, total, err := s.repo.List(ctx, filter.Estado, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.DomicilioListResponse{
		Data:  make([]dto.DomicilioResponse, 0, len(domicilios)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range domicilios {
		resp.Data = append(resp.Data, *domicilioToResponse(&domicilios[i]))
	}
	return resp, nil
}

func (s *domicilioService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.DomicilioResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("domicilio %s: %w", id, domerr.ErrNotFound)
	}

	// Entregado and Cancelado are terminal — read-only afterwards.
	if d.Estado == model.DomicilioEntregado || d.Estado == model.DomicilioCancelado {
		return nil, fmt.Errorf("domicilio en estado %q: %w", d.Estado, domerr.ErrTransicionInvalida)
	}

	if estado != model.DomicilioCancelado {
		actual, ok := ordenEstadoDomicilio[d.Estado]
		siguiente, ok2 := ordenEstadoDomicilio[estado]
		if !ok || !ok2 || siguiente <= actual {
			return nil, fmt.Errorf("de %q a %q: %w", d.Estado, estado, domerr.ErrTransicionInvalida)
		}
	}

	d.Estado = estado
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("actualizar domicilio: %w", err)
	}
	return domicilioToResponse(d), nil
}

func domicilioToResponse(d *model.Domicilio) *dto.DomicilioResponse {
	return &dto.DomicilioResponse{
		ID:              d.ID.String(),
		PedidoID:        d.PedidoID.String(),
		Direccion:       d.Direccion,
		Repartidor:      d.Repartidor,
		FechaProgramada: d.FechaProgramada.Format(time.RFC3339),
		Estado:          d.Estado,
		Notas:           d.Notas,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
	}
}

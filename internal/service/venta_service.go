package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/worker"
)

type VentaService interface {
	RegistrarDirecta(ctx context.Context, req dto.RegistrarVentaDirectaRequest) (*dto.VentaResponse, error)
	RegistrarPorPedido(ctx context.Context, req dto.RegistrarVentaPorPedidoRequest) (*dto.VentaResponse, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	pedidoRepo   repository.PedidoRepository
	clienteRepo  repository.ClienteRepository
	movRepo      repository.MovimientoStockRepository
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	pedidoRepo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	movRepo repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		pedidoRepo:   pedidoRepo,
		clienteRepo:  clienteRepo,
		movRepo:      movRepo,
		dispatcher:   dispatcher,
	}
}

// ── RegistrarDirecta ─────────────────────────────────────────────────────────
// Walk-in sale: price snapshots taken from the current catalog, then one
// atomic pass over the lines. If line k's guarded decrement fails, lines
// 1..k-1 are compensated in reverse order before returning, so no partial
// stock change ever survives the call.

func (s *ventaService) RegistrarDirecta(ctx context.Context, req dto.RegistrarVentaDirectaRequest) (*dto.VentaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", domerr.ErrValidacion)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", req.ClienteID, domerr.ErrNotFound)
	}

	// Pre-flight outside the transaction: resolve products, snapshot prices.
	lineas := make([]model.Linea, 0, len(req.Items))
	nombres := make(map[uuid.UUID]string, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", domerr.ErrValidacion)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", item.ProductoID, domerr.ErrNotFound)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s está inactivo: %w", p.Nombre, domerr.ErrValidacion)
		}
		nombres[pid] = p.Nombre
		lineas = append(lineas, model.Linea{
			ProductoID:     pid,
			Cantidad:       item.Cantidad,
			PrecioUnitario: p.Precio,
		})
	}
	lineas, total, err := model.CalcularLineas(lineas)
	if err != nil {
		return nil, err
	}

	venta := model.Venta{
		Tipo:       model.VentaDirecta,
		ClienteID:  clienteID,
		MetodoPago: req.MetodoPago,
		Total:      total,
		Estado:     model.VentaCompletada,
		Items:      lineasToVentaItems(lineas),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
		}
		return s.descontarStockLineas(tx, venta.ID, lineas, nombres)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.encolarRecibo(ctx, &venta, cliente)
	return s.ventaConNombres(&venta, nombres), nil
}

// ── RegistrarPorPedido ───────────────────────────────────────────────────────
// Converts a pedido into a venta using the pedido's captured lines (prices as
// sold, not as currently listed). The same stock discipline applies; the
// pedido moves to Completado inside the same transaction.

func (s *ventaService) RegistrarPorPedido(ctx context.Context, req dto.RegistrarVentaPorPedidoRequest) (*dto.VentaResponse, error) {
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
	cliente, err := s.clienteRepo.FindByID(ctx, pedido.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", pedido.ClienteID, domerr.ErrNotFound)
	}

	lineas := make([]model.Linea, 0, len(pedido.Items))
	nombres := make(map[uuid.UUID]string, len(pedido.Items))
	for _, item := range pedido.Items {
		lineas = append(lineas, model.Linea{
			ProductoID:     item.ProductoID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
		if item.Producto != nil {
			nombres[item.ProductoID] = item.Producto.Nombre
		}
	}
	if len(lineas) == 0 {
		return nil, fmt.Errorf("el pedido no tiene items: %w", domerr.ErrValidacion)
	}

	venta := model.Venta{
		Tipo:       model.VentaPorPedido,
		PedidoID:   &pedido.ID,
		ClienteID:  pedido.ClienteID,
		MetodoPago: req.MetodoPago,
		Total:      pedido.Total,
		Estado:     model.VentaCompletada,
		Items:      lineasToVentaItems(lineas),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
		}
		if err := s.descontarStockLineas(tx, venta.ID, lineas, nombres); err != nil {
			return err
		}
		pedido.Estado = model.PedidoCompletado
		return s.pedidoRepo.UpdateTx(tx, pedido)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.encolarRecibo(ctx, &venta, cliente)
	return s.ventaConNombres(&venta, nombres), nil
}

// descontarStockLineas applies the guarded decrement per line and records a
// movimiento for each. On failure at line k it re-adds lines k-1..0 before
// returning; under a real transaction the rollback covers this too, but the
// compensation keeps the contract honest for any non-transactional backend.
func (s *ventaService) descontarStockLineas(tx *gorm.DB, ventaID uuid.UUID, lineas []model.Linea, nombres map[uuid.UUID]string) error {
	for k, l := range lineas {
		stockAntes := 0
		if prodBefore, err := s.productoRepo.FindByIDTx(tx, l.ProductoID); err == nil && prodBefore != nil {
			stockAntes = prodBefore.StockActual
		}

		if err := s.productoRepo.UpdateStockGuardedTx(tx, l.ProductoID, -l.Cantidad); err != nil {
			for j := k - 1; j >= 0; j-- {
				_ = s.productoRepo.UpdateStockGuardedTx(tx, lineas[j].ProductoID, lineas[j].Cantidad)
			}
			if errors.Is(err, domerr.ErrStockInsuficiente) {
				return fmt.Errorf("stock insuficiente de %s: %w", nombres[l.ProductoID], domerr.ErrStockInsuficiente)
			}
			return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
		}

		ventaRef := ventaID
		mov := &model.MovimientoStock{
			ProductoID:    l.ProductoID,
			Tipo:          "venta",
			Cantidad:      -l.Cantidad,
			StockAnterior: stockAntes,
			StockNuevo:    stockAntes - l.Cantidad,
			Motivo:        fmt.Sprintf("Venta %s", ventaID),
			ReferenciaID:  &ventaRef,
		}
		if err := s.movRepo.CreateTx(tx, mov); err != nil {
			return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
		}
	}
	return nil
}

// ── Anular ───────────────────────────────────────────────────────────────────

func (s *ventaService) Anular(ctx context.Context, id uuid.UUID, motivo string) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("venta %s: %w", id, domerr.ErrNotFound)
	}
	if venta.Estado == model.VentaAnulada {
		return domerr.ErrYaAnulada
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venta.Items {
			stockAntes := 0
			if prodBefore, err := s.productoRepo.FindByIDTx(tx, item.ProductoID); err == nil && prodBefore != nil {
				stockAntes = prodBefore.StockActual
			}

			if err := s.productoRepo.UpdateStockGuardedTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
			}

			ventaRef := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          "anulacion_venta",
				Cantidad:      item.Cantidad,
				StockAnterior: stockAntes,
				StockNuevo:    stockAntes + item.Cantidad,
				Motivo:        fmt.Sprintf("Anulación venta %s — %s", venta.ID, motivo),
				ReferenciaID:  &ventaRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
			}
		}

		venta.Estado = model.VentaAnulada
		venta.MotivoAnulacion = &motivo
		return s.repo.UpdateTx(tx, venta)
	})
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venta %s: %w", id, domerr.ErrNotFound)
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.repo.List(ctx, repository.VentaFilter{
		Estado:    filter.Estado,
		ClienteID: filter.ClienteID,
		Page:      filter.Page,
		Limit:     filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, 0, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		resp.Data = append(resp.Data, *ventaToResponse(&ventas[i]))
	}
	return resp, nil
}

// encolarRecibo queues the receipt job. Best-effort — the sale already
// committed, a queue hiccup must not fail it.
func (s *ventaService) encolarRecibo(ctx context.Context, venta *model.Venta, cliente *model.Cliente) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.ReciboJobPayload{
		Tipo:         worker.ReciboVenta,
		ReferenciaID: venta.ID.String(),
	}
	if cliente != nil && cliente.Email != nil && *cliente.Email != "" {
		payload.ClienteEmail = cliente.Email
	}
	_ = s.dispatcher.EnqueueRecibo(ctx, payload)
}

func (s *ventaService) ventaConNombres(venta *model.Venta, nombres map[uuid.UUID]string) *dto.VentaResponse {
	resp := ventaToResponse(venta)
	for i, item := range venta.Items {
		if n, ok := nombres[item.ProductoID]; ok {
			resp.Items[i].Producto = n
		}
	}
	return resp
}

func lineasToVentaItems(lineas []model.Linea) []model.VentaItem {
	items := make([]model.VentaItem, 0, len(lineas))
	for _, l := range lineas {
		sub := l.Subtotal
		if sub.IsZero() {
			sub = l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
		}
		items = append(items, model.VentaItem{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       sub,
		})
	}
	return items
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:         v.ID.String(),
		Tipo:       v.Tipo,
		ClienteID:  v.ClienteID.String(),
		MetodoPago: v.MetodoPago,
		Items:      make([]dto.ItemVentaResponse, 0, len(v.Items)),
		Total:      v.Total,
		Estado:     v.Estado,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
	if v.PedidoID != nil {
		pid := v.PedidoID.String()
		resp.PedidoID = &pid
	}
	for _, item := range v.Items {
		ir := dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		}
		if item.Producto != nil {
			ir.Producto = item.Producto.Nombre
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}

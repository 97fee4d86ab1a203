package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
)

// PedidoService implements the order state machine:
// Pendiente → En Proceso → Completado (forward only), plus the cancellation
// edge from any non-terminal state. Prices are snapshotted at creation.
type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	// CrearDesdeCarrito converts the caller's cart session into a pedido and
	// empties the cart on success.
	CrearDesdeCarrito(ctx context.Context, usuarioID string, req dto.CheckoutCarritoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	carrito      repository.CarritoStore
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	carrito repository.CarritoStore,
) PedidoService {
	return &pedidoService{repo: repo, productoRepo: productoRepo, clienteRepo: clienteRepo, carrito: carrito}
}

// ordenEstadoPedido defines the forward progression. Cancelado sits outside:
// it is reachable from any non-terminal state but never left.
var ordenEstadoPedido = map[string]int{
	model.PedidoPendiente:  0,
	model.PedidoEnProceso:  1,
	model.PedidoCompletado: 2,
}

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", domerr.ErrValidacion)
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, fmt.Errorf("cliente %s: %w", req.ClienteID, domerr.ErrNotFound)
	}
	fechaEntrega, err := time.Parse("2006-01-02", req.FechaEntrega)
	if err != nil {
		return nil, fmt.Errorf("fecha_entrega inválida (YYYY-MM-DD): %w", domerr.ErrValidacion)
	}

	items, total, err := s.resolverItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	pedido := model.Pedido{
		ClienteID:    clienteID,
		FechaEntrega: fechaEntrega,
		Total:        total,
		Estado:       model.PedidoPendiente,
		Items:        items,
	}
	if err := s.repo.Create(ctx, &pedido); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	return pedidoToResponse(&pedido), nil
}

func (s *pedidoService) CrearDesdeCarrito(ctx context.Context, usuarioID string, req dto.CheckoutCarritoRequest) (*dto.PedidoResponse, error) {
	carrito, err := s.carrito.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if len(carrito.Lineas) == 0 {
		return nil, fmt.Errorf("el carrito está vacío: %w", domerr.ErrValidacion)
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", domerr.ErrValidacion)
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, fmt.Errorf("cliente %s: %w", req.ClienteID, domerr.ErrNotFound)
	}
	fechaEntrega, err := time.Parse("2006-01-02", req.FechaEntrega)
	if err != nil {
		return nil, fmt.Errorf("fecha_entrega inválida (YYYY-MM-DD): %w", domerr.ErrValidacion)
	}

	// The cart already carries price snapshots; reuse them instead of the
	// current catalog price so what the user saw is what gets charged.
	lineas := make([]model.Linea, 0, len(carrito.Lineas))
	for _, l := range carrito.Lineas {
		lineas = append(lineas, model.Linea{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
		})
	}
	lineas, total, err := model.CalcularLineas(lineas)
	if err != nil {
		return nil, err
	}

	pedido := model.Pedido{
		ClienteID:    clienteID,
		FechaEntrega: fechaEntrega,
		Total:        total,
		Estado:       model.PedidoPendiente,
		Items:        lineasToPedidoItems(lineas),
	}
	if err := s.repo.Create(ctx, &pedido); err != nil {
		return nil, fmt.Errorf("crear pedido desde carrito: %w", err)
	}

	// Best-effort: a stale cart left behind expires via TTL anyway.
	if err := s.carrito.Delete(ctx, usuarioID); err != nil {
		return pedidoToResponse(&pedido), nil
	}
	return pedidoToResponse(&pedido), nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pedido %s: %w", id, domerr.ErrNotFound)
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	pedidos, total, err := s.repo.List(ctx, repository.PedidoFilter{
		Estado:    filter.Estado,
		ClienteID: filter.ClienteID,
		Page:      filter.Page,
		Limit:     filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.PedidoListResponse{
		Data:  make([]dto.PedidoResponse, 0, len(pedidos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range pedidos {
		resp.Data = append(resp.Data, *pedidoToResponse(&pedidos[i]))
	}
	return resp, nil
}

func (s *pedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pedido %s: %w", id, domerr.ErrNotFound)
	}
	if pedido.Estado == model.PedidoCancelado {
		return nil, domerr.ErrPedidoBloqueado
	}

	if req.FechaEntrega != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaEntrega)
		if err != nil {
			return nil, fmt.Errorf("fecha_entrega inválida (YYYY-MM-DD): %w", domerr.ErrValidacion)
		}
		pedido.FechaEntrega = fecha
	}

	var nuevosItems []model.PedidoItem
	if req.Items != nil {
		items, total, err := s.resolverItems(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		nuevosItems = items
		pedido.Total = total
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if nuevosItems != nil {
			if err := s.repo.ReplaceItemsTx(tx, pedido.ID, nuevosItems); err != nil {
				return err
			}
			pedido.Items = nuevosItems
		}
		return s.repo.UpdateTx(tx, pedido)
	})
	if txErr != nil {
		return nil, fmt.Errorf("actualizar pedido: %w", txErr)
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pedido %s: %w", id, domerr.ErrNotFound)
	}
	if pedido.Estado == model.PedidoCancelado {
		return nil, domerr.ErrPedidoBloqueado
	}

	actual, ok := ordenEstadoPedido[pedido.Estado]
	siguiente, ok2 := ordenEstadoPedido[estado]
	if !ok || !ok2 || siguiente <= actual {
		return nil, fmt.Errorf("de %q a %q: %w", pedido.Estado, estado, domerr.ErrTransicionInvalida)
	}

	pedido.Estado = estado
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, fmt.Errorf("cambiar estado: %w", err)
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) Cancelar(ctx context.Context, id uuid.UUID) error {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("pedido %s: %w", id, domerr.ErrNotFound)
	}
	if pedido.Estado == model.PedidoCancelado {
		return domerr.ErrYaCancelado
	}
	if pedido.Estado == model.PedidoCompletado {
		return fmt.Errorf("un pedido completado no puede cancelarse: %w", domerr.ErrTransicionInvalida)
	}

	// Stock already committed by a linked venta is NOT reversed here; that is
	// an explicit ajuste the caller requests separately.
	pedido.Estado = model.PedidoCancelado
	return s.repo.Update(ctx, pedido)
}

// resolverItems validates each requested line against the catalog and
// snapshots current prices.
func (s *pedidoService) resolverItems(ctx context.Context, items []dto.ItemPedidoRequest) ([]model.PedidoItem, decimal.Decimal, error) {
	lineas := make([]model.Linea, 0, len(items))
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("producto_id inválido: %w", domerr.ErrValidacion)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("producto %s: %w", item.ProductoID, domerr.ErrNotFound)
		}
		if !p.Activo {
			return nil, decimal.Zero, fmt.Errorf("producto %s está inactivo: %w", p.Nombre, domerr.ErrValidacion)
		}
		lineas = append(lineas, model.Linea{
			ProductoID:     pid,
			Cantidad:       item.Cantidad,
			PrecioUnitario: p.Precio,
		})
	}
	lineas, total, err := model.CalcularLineas(lineas)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return lineasToPedidoItems(lineas), total, nil
}

func lineasToPedidoItems(lineas []model.Linea) []model.PedidoItem {
	items := make([]model.PedidoItem, 0, len(lineas))
	for _, l := range lineas {
		items = append(items, model.PedidoItem{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal,
		})
	}
	return items
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:           p.ID.String(),
		ClienteID:    p.ClienteID.String(),
		FechaEntrega: p.FechaEntrega.Format("2006-01-02"),
		Items:        make([]dto.ItemPedidoResponse, 0, len(p.Items)),
		Total:        p.Total,
		Estado:       p.Estado,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.Cliente != nil {
		resp.Cliente = p.Cliente.Nombre
	}
	for _, item := range p.Items {
		ir := dto.ItemPedidoResponse{
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

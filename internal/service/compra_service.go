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

// CompraService mirrors the sale's line-item discipline on the inbound side:
// stock is applied when the compra completes, all-or-nothing, and a completed
// compra only voids with the explicit stock-reversal flag.
type CompraService interface {
	Crear(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error)
	Completar(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	Anular(ctx context.Context, id uuid.UUID, req dto.AnularCompraRequest) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
}

type compraService struct {
	repo          repository.CompraRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	movRepo       repository.MovimientoStockRepository
	tasaIVA       int
}

func NewCompraService(
	repo repository.CompraRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	movRepo repository.MovimientoStockRepository,
	tasaIVA int,
) CompraService {
	return &compraService{
		repo:          repo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		movRepo:       movRepo,
		tasaIVA:       tasaIVA,
	}
}

func (s *compraService) Crear(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", domerr.ErrValidacion)
	}
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		return nil, fmt.Errorf("proveedor %s: %w", req.ProveedorID, domerr.ErrNotFound)
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida (YYYY-MM-DD): %w", domerr.ErrValidacion)
	}

	lineas := make([]model.Linea, 0, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", domerr.ErrValidacion)
		}
		if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
			return nil, fmt.Errorf("producto %s: %w", item.ProductoID, domerr.ErrNotFound)
		}
		lineas = append(lineas, model.Linea{
			ProductoID:     pid,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
		})
	}
	lineas, subtotal, err := model.CalcularLineas(lineas)
	if err != nil {
		return nil, err
	}
	iva, total := model.CalcularIVA(subtotal, s.tasaIVA)

	compra := model.Compra{
		ProveedorID: proveedorID,
		Fecha:       fecha,
		Subtotal:    subtotal,
		IVA:         iva,
		Total:       total,
		Estado:      model.CompraPendiente,
		Items:       lineasToCompraItems(lineas),
	}
	if err := s.repo.Create(ctx, &compra); err != nil {
		return nil, fmt.Errorf("crear compra: %w", err)
	}
	return compraToResponse(&compra), nil
}

// Completar applies the stock increments of a pending compra as one atomic
// unit and moves it to Completada.
func (s *compraService) Completar(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("compra %s: %w", id, domerr.ErrNotFound)
	}
	if compra.Estado != model.CompraPendiente {
		return nil, fmt.Errorf("compra en estado %q: %w", compra.Estado, domerr.ErrTransicionInvalida)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for k, item := range compra.Items {
			stockAntes := 0
			if prodBefore, err := s.productoRepo.FindByIDTx(tx, item.ProductoID); err == nil && prodBefore != nil {
				stockAntes = prodBefore.StockActual
			}

			if err := s.productoRepo.UpdateStockGuardedTx(tx, item.ProductoID, item.Cantidad); err != nil {
				for j := k - 1; j >= 0; j-- {
					_ = s.productoRepo.UpdateStockGuardedTx(tx, compra.Items[j].ProductoID, -compra.Items[j].Cantidad)
				}
				return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
			}

			compraRef := compra.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          "compra",
				Cantidad:      item.Cantidad,
				StockAnterior: stockAntes,
				StockNuevo:    stockAntes + item.Cantidad,
				Motivo:        fmt.Sprintf("Compra %s", compra.ID),
				ReferenciaID:  &compraRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
			}
		}

		compra.Estado = model.CompraCompletada
		return s.repo.UpdateTx(tx, compra)
	})
	if txErr != nil {
		return nil, txErr
	}
	return compraToResponse(compra), nil
}

// Anular voids a compra. Pendiente voids freely; Completada already moved
// stock, so it demands revertir_stock=true and undoes each increment with the
// same guarded, all-or-nothing pass.
func (s *compraService) Anular(ctx context.Context, id uuid.UUID, req dto.AnularCompraRequest) error {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("compra %s: %w", id, domerr.ErrNotFound)
	}
	switch compra.Estado {
	case model.CompraAnulada:
		return domerr.ErrYaAnulada
	case model.CompraPendiente:
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			compra.Estado = model.CompraAnulada
			return s.repo.UpdateTx(tx, compra)
		})
	}

	// Completada
	if !req.RevertirStock {
		return fmt.Errorf("la compra ya aplicó stock; requiere revertir_stock=true: %w", domerr.ErrTransicionInvalida)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for k, item := range compra.Items {
			stockAntes := 0
			if prodBefore, err := s.productoRepo.FindByIDTx(tx, item.ProductoID); err == nil && prodBefore != nil {
				stockAntes = prodBefore.StockActual
			}

			if err := s.productoRepo.UpdateStockGuardedTx(tx, item.ProductoID, -item.Cantidad); err != nil {
				for j := k - 1; j >= 0; j-- {
					_ = s.productoRepo.UpdateStockGuardedTx(tx, compra.Items[j].ProductoID, compra.Items[j].Cantidad)
				}
				if errors.Is(err, domerr.ErrStockInsuficiente) {
					return fmt.Errorf("el stock comprado ya fue consumido: %w", domerr.ErrStockInsuficiente)
				}
				return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
			}

			compraRef := compra.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          "anulacion_compra",
				Cantidad:      -item.Cantidad,
				StockAnterior: stockAntes,
				StockNuevo:    stockAntes - item.Cantidad,
				Motivo:        fmt.Sprintf("Anulación compra %s — %s", compra.ID, req.Motivo),
				ReferenciaID:  &compraRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return fmt.Errorf("%v: %w", err, domerr.ErrPersistencia)
			}
		}

		compra.Estado = model.CompraAnulada
		return s.repo.UpdateTx(tx, compra)
	})
}

func (s *compraService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("compra %s: %w", id, domerr.ErrNotFound)
	}
	return compraToResponse(compra), nil
}

func (s *compraService) Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	compras, total, err := s.repo.List(ctx, filter.Estado, filter.ProveedorID, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.CompraListResponse{
		Data:  make([]dto.CompraResponse, 0, len(compras)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range compras {
		resp.Data = append(resp.Data, *compraToResponse(&compras[i]))
	}
	return resp, nil
}

func lineasToCompraItems(lineas []model.Linea) []model.CompraItem {
	items := make([]model.CompraItem, 0, len(lineas))
	for _, l := range lineas {
		items = append(items, model.CompraItem{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal,
		})
	}
	return items
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	resp := &dto.CompraResponse{
		ID:            c.ID.String(),
		ProveedorID:   c.ProveedorID.String(),
		Fecha:         c.Fecha.Format("2006-01-02"),
		FechaCreacion: c.FechaCreacion.Format(time.RFC3339),
		Items:         make([]dto.ItemCompraResponse, 0, len(c.Items)),
		Subtotal:      c.Subtotal,
		IVA:           c.IVA,
		Total:         c.Total,
		Estado:        c.Estado,
	}
	if c.Proveedor != nil {
		resp.Proveedor = c.Proveedor.RazonSocial
	}
	for _, item := range c.Items {
		ir := dto.ItemCompraResponse{
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

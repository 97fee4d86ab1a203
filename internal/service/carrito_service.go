package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
)

// CarritoService manages the pre-checkout cart session of a user. Stock
// limits are enforced softly here: a change that asks for more units than the
// catalog holds leaves the cart untouched and reports an advertencia instead
// of failing — the hard guarantee lives in the sale transaction.
type CarritoService interface {
	Ver(ctx context.Context, usuarioID string) (*dto.CarritoResponse, error)
	Agregar(ctx context.Context, usuarioID string, req dto.AgregarAlCarritoRequest) (*dto.CarritoResponse, error)
	FijarCantidad(ctx context.Context, usuarioID string, req dto.FijarCantidadRequest) (*dto.CarritoResponse, error)
	Quitar(ctx context.Context, usuarioID string, productoID uuid.UUID) (*dto.CarritoResponse, error)
	Vaciar(ctx context.Context, usuarioID string) error
}

type carritoService struct {
	store        repository.CarritoStore
	productoRepo repository.ProductoRepository
}

func NewCarritoService(store repository.CarritoStore, productoRepo repository.ProductoRepository) CarritoService {
	return &carritoService{store: store, productoRepo: productoRepo}
}

func (s *carritoService) Ver(ctx context.Context, usuarioID string) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return carritoToResponse(usuarioID, carrito, nil), nil
}

func (s *carritoService) Agregar(ctx context.Context, usuarioID string, req dto.AgregarAlCarritoRequest) (*dto.CarritoResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", domerr.ErrValidacion)
	}
	cantidad := req.Cantidad
	if cantidad == 0 {
		cantidad = 1
	}

	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", req.ProductoID, domerr.ErrNotFound)
	}
	if !p.Activo {
		return nil, fmt.Errorf("producto %s está inactivo: %w", p.Nombre, domerr.ErrValidacion)
	}

	carrito, err := s.store.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	// Adding merges with the existing line; the combined quantity is what must
	// fit in stock.
	deseada := cantidad
	idx := carrito.Buscar(pid)
	if idx >= 0 {
		deseada += carrito.Lineas[idx].Cantidad
	}
	if deseada > p.StockActual {
		adv := fmt.Sprintf("stock insuficiente de %s: disponibles %d, solicitadas %d", p.Nombre, p.StockActual, deseada)
		return carritoToResponse(usuarioID, carrito, &adv), nil
	}

	if idx >= 0 {
		carrito.Lineas[idx].Cantidad = deseada
	} else {
		carrito.Lineas = append(carrito.Lineas, model.CarritoLinea{
			ProductoID:     pid,
			Nombre:         p.Nombre,
			PrecioUnitario: p.Precio,
			Cantidad:       cantidad,
		})
	}

	if err := s.store.Save(ctx, usuarioID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(usuarioID, carrito, nil), nil
}

func (s *carritoService) FijarCantidad(ctx context.Context, usuarioID string, req dto.FijarCantidadRequest) (*dto.CarritoResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", domerr.ErrValidacion)
	}

	carrito, err := s.store.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	idx := carrito.Buscar(pid)
	if idx < 0 {
		return nil, fmt.Errorf("el producto no está en el carrito: %w", domerr.ErrNotFound)
	}

	// Zero or negative removes the line.
	if req.Cantidad <= 0 {
		carrito.Lineas = append(carrito.Lineas[:idx], carrito.Lineas[idx+1:]...)
		if err := s.store.Save(ctx, usuarioID, carrito); err != nil {
			return nil, err
		}
		return carritoToResponse(usuarioID, carrito, nil), nil
	}

	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", req.ProductoID, domerr.ErrNotFound)
	}
	if req.Cantidad > p.StockActual {
		adv := fmt.Sprintf("stock insuficiente de %s: disponibles %d, solicitadas %d", p.Nombre, p.StockActual, req.Cantidad)
		return carritoToResponse(usuarioID, carrito, &adv), nil
	}

	carrito.Lineas[idx].Cantidad = req.Cantidad
	if err := s.store.Save(ctx, usuarioID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(usuarioID, carrito, nil), nil
}

func (s *carritoService) Quitar(ctx context.Context, usuarioID string, productoID uuid.UUID) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	idx := carrito.Buscar(productoID)
	if idx < 0 {
		return nil, fmt.Errorf("el producto no está en el carrito: %w", domerr.ErrNotFound)
	}
	carrito.Lineas = append(carrito.Lineas[:idx], carrito.Lineas[idx+1:]...)
	if err := s.store.Save(ctx, usuarioID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(usuarioID, carrito, nil), nil
}

func (s *carritoService) Vaciar(ctx context.Context, usuarioID string) error {
	return s.store.Delete(ctx, usuarioID)
}

func carritoToResponse(usuarioID string, c *model.Carrito, advertencia *string) *dto.CarritoResponse {
	resp := &dto.CarritoResponse{
		SesionID:    usuarioID,
		Lineas:      make([]dto.CarritoLineaResponse, 0, len(c.Lineas)),
		Total:       c.Total(),
		Advertencia: advertencia,
	}
	for _, l := range c.Lineas {
		resp.Lineas = append(resp.Lineas, dto.CarritoLineaResponse{
			ProductoID:     l.ProductoID.String(),
			Nombre:         l.Nombre,
			PrecioUnitario: l.PrecioUnitario,
			Cantidad:       l.Cantidad,
			Subtotal:       l.PrecioUnitario.Mul(decimalFromInt(l.Cantidad)),
		})
	}
	return resp
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/apierror"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
)

// MovimientosHandler exposes the stock audit trail of a product.
type MovimientosHandler struct {
	repo repository.MovimientoStockRepository
}

func NewMovimientosHandler(repo repository.MovimientoStockRepository) *MovimientosHandler {
	return &MovimientosHandler{repo: repo}
}

func (h *MovimientosHandler) ListarPorProducto(c *gin.Context) {
	productoID, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, limit := paginacion(c)

	movimientos, total, err := h.repo.ListByProducto(c.Request.Context(), productoID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar movimientos"))
		return
	}

	type movimientoResponse struct {
		ID            string  `json:"id"`
		Tipo          string  `json:"tipo"`
		Cantidad      int     `json:"cantidad"`
		StockAnterior int     `json:"stock_anterior"`
		StockNuevo    int     `json:"stock_nuevo"`
		Motivo        string  `json:"motivo"`
		ReferenciaID  *string `json:"referencia_id,omitempty"`
		CreatedAt     string  `json:"created_at"`
	}
	data := make([]movimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		mr := movimientoResponse{
			ID:            m.ID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
		if m.ReferenciaID != nil {
			ref := m.ReferenciaID.String()
			mr.ReferenciaID = &ref
		}
		data = append(data, mr)
	}

	c.JSON(http.StatusOK, gin.H{"data": data, "total": total, "page": page, "limit": limit})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/middleware"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/service"
)

// CarritoHandler operates on the cart session of the authenticated user:
// the session key is the user ID from the JWT, never a client-supplied value.
type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

func sesionID(c *gin.Context) string {
	return middleware.GetClaims(c).UserID
}

func (h *CarritoHandler) Ver(c *gin.Context) {
	resp, err := h.svc.Ver(c.Request.Context(), sesionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Agregar(c *gin.Context) {
	var req dto.AgregarAlCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), sesionID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) FijarCantidad(c *gin.Context) {
	var req dto.FijarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.FijarCantidad(c.Request.Context(), sesionID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Quitar(c *gin.Context) {
	productoID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Quitar(c.Request.Context(), sesionID(c), productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	if err := h.svc.Vaciar(c.Request.Context(), sesionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

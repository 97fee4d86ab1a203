package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/apierror"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/dto"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/service"
)

type AbonosHandler struct{ svc service.AbonoService }

func NewAbonosHandler(svc service.AbonoService) *AbonosHandler {
	return &AbonosHandler{svc: svc}
}

func (h *AbonosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarAbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AbonosHandler) Anular(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Saldo and ListarPorPedido hang off the pedido: /pedidos/:id/saldo, /pedidos/:id/abonos.

func (h *AbonosHandler) Saldo(c *gin.Context) {
	pedidoID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Saldo(c.Request.Context(), pedidoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AbonosHandler) ListarPorPedido(c *gin.Context) {
	pedidoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	abonos, err := h.svc.ListarPorPedido(c.Request.Context(), pedidoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": abonos})
}

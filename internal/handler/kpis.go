package handler

import (
	"net/http"

	"colochas/internal/dto"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type KpisHandler struct{ svc service.KpiService }

func NewKpisHandler(svc service.KpiService) *KpisHandler { return &KpisHandler{svc: svc} }

func (h *KpisHandler) NumerosMasVendidos(c *gin.Context) {
	var filter dto.RangoFechasFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.NumerosMasVendidos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *KpisHandler) EmpleadosMasVentas(c *gin.Context) {
	var filter dto.RangoFechasFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.EmpleadosMasVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *KpisHandler) VentasHoy(c *gin.Context) {
	resp, err := h.svc.VentasHoy(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"colochas/internal/apierror"
	"colochas/internal/dto"
	"colochas/internal/middleware"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Crear registers a multi-line sale for the authenticated seller.
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Crear(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarBoucher looks a sale up by its receipt number.
func (h *VentasHandler) BuscarBoucher(c *gin.Context) {
	boucher := c.Param("numero")
	if boucher == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Numero de boucher requerido"))
		return
	}
	resp, err := h.svc.BuscarBoucher(c.Request.Context(), boucher)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Eliminar(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Eliminar(c.Request.Context(), claims.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"colochas/internal/dto"
	"colochas/internal/middleware"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type HistorialHandler struct{ svc service.HistorialService }

func NewHistorialHandler(svc service.HistorialService) *HistorialHandler {
	return &HistorialHandler{svc: svc}
}

// Ventas lists sales with filters and pagination. Vendedores only see
// their own sales; admin and supervisor may query any seller.
func (h *HistorialHandler) Ventas(c *gin.Context) {
	var filter dto.HistorialFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	if claims.Rol == "vendedor" {
		filter.UsuarioID = &claims.UserID
	}

	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnalisisNumeros aggregates all 100 numeros over the filtered sales.
func (h *HistorialHandler) AnalisisNumeros(c *gin.Context) {
	var filter dto.AnalisisFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	if claims.Rol == "vendedor" {
		filter.UsuarioID = &claims.UserID
	}

	resp, err := h.svc.AnalisisNumeros(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

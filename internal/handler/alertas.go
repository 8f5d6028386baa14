package handler

import (
	"net/http"

	"colochas/internal/dto"
	"colochas/internal/middleware"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertasHandler struct{ svc service.AlertaService }

func NewAlertasHandler(svc service.AlertaService) *AlertasHandler { return &AlertasHandler{svc: svc} }

// Listar returns the caller's alerts, optionally filtered by estado.
func (h *AlertasHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Listar(c.Request.Context(), claims.UserID, c.Query("estado"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Marcar transitions an alert to vista or resuelta.
func (h *AlertasHandler) Marcar(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MarcarAlertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Marcar(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

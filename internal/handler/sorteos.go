package handler

import (
	"net/http"

	"colochas/internal/apierror"
	"colochas/internal/dto"
	"colochas/internal/middleware"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type SorteosHandler struct{ svc service.SorteoService }

func NewSorteosHandler(svc service.SorteoService) *SorteosHandler { return &SorteosHandler{svc: svc} }

func (h *SorteosHandler) Crear(c *gin.Context) {
	var req dto.CrearSorteoRequest
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

func (h *SorteosHandler) Listar(c *gin.Context) {
	var fecha *string
	if raw := c.Query("fecha"); raw != "" {
		fecha = &raw
	}
	resp, err := h.svc.Listar(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SorteosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *SorteosHandler) ObtenerPorTurnoFecha(c *gin.Context) {
	turnoID, ok := pathID(c, "turnoId")
	if !ok {
		return
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro fecha requerido"))
		return
	}
	resp, err := h.svc.ObtenerPorTurnoFecha(c.Request.Context(), turnoID, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

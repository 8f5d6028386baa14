package handler

import (
	"net/http"

	"colochas/internal/apierror"
	"colochas/internal/dto"
	"colochas/internal/middleware"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionesHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionesHandler(svc service.ConfiguracionService) *ConfiguracionesHandler {
	return &ConfiguracionesHandler{svc: svc}
}

func (h *ConfiguracionesHandler) Crear(c *gin.Context) {
	var req dto.CrearConfiguracionRequest
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

func (h *ConfiguracionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracionesHandler) ObtenerPorClave(c *gin.Context) {
	clave := c.Param("clave")
	if clave == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Clave requerida"))
		return
	}
	resp, err := h.svc.ObtenerPorClave(c.Request.Context(), clave)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracionesHandler) Actualizar(c *gin.Context) {
	clave := c.Param("clave")
	if clave == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Clave requerida"))
		return
	}
	var req dto.ActualizarConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Actualizar(c.Request.Context(), claims.UserID, clave, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

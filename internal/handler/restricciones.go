package handler

import (
	"net/http"
	"strconv"

	"colochas/internal/apierror"
	"colochas/internal/dto"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type RestriccionesHandler struct{ svc service.RestriccionService }

func NewRestriccionesHandler(svc service.RestriccionService) *RestriccionesHandler {
	return &RestriccionesHandler{svc: svc}
}

func (h *RestriccionesHandler) Crear(c *gin.Context) {
	var req dto.CrearRestriccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if resp.YaExistia {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

func (h *RestriccionesHandler) CrearMultiples(c *gin.Context) {
	var req dto.CrearMultiplesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMultiples(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar filters by optional turno_id and fecha query params.
func (h *RestriccionesHandler) Listar(c *gin.Context) {
	var turnoID *uint
	if raw := c.Query("turno_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("turno_id invalido"))
			return
		}
		v := uint(id)
		turnoID = &v
	}
	var fecha *string
	if raw := c.Query("fecha"); raw != "" {
		fecha = &raw
	}
	resp, err := h.svc.Listar(c.Request.Context(), turnoID, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RestriccionesHandler) Verificar(c *gin.Context) {
	turnoID, ok := pathID(c, "turnoId")
	if !ok {
		return
	}
	numero, err := strconv.Atoi(c.Param("numero"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Numero invalido"))
		return
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro fecha requerido"))
		return
	}
	resp, err := h.svc.Verificar(c.Request.Context(), turnoID, numero, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RestriccionesHandler) VerificarMultiples(c *gin.Context) {
	var req dto.VerificarMultiplesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.VerificarMultiples(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RestriccionesHandler) Eliminar(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EliminarPorNumero removes the restriction identified by its natural key.
func (h *RestriccionesHandler) EliminarPorNumero(c *gin.Context) {
	turnoID, ok := pathID(c, "turnoId")
	if !ok {
		return
	}
	numero, err := strconv.Atoi(c.Param("numero"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Numero invalido"))
		return
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro fecha requerido"))
		return
	}
	if err := h.svc.EliminarPorNumero(c.Request.Context(), turnoID, numero, fecha); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RestriccionesHandler) EliminarMultiples(c *gin.Context) {
	var req dto.EliminarMultiplesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EliminarMultiples(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"colochas/internal/apierror"
	"colochas/internal/dto"
	"colochas/internal/middleware"
	"colochas/internal/service"
	"colochas/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CierresHandler struct {
	svc        service.CierreService
	dispatcher *worker.Dispatcher
}

func NewCierresHandler(svc service.CierreService, dispatcher *worker.Dispatcher) *CierresHandler {
	return &CierresHandler{svc: svc, dispatcher: dispatcher}
}

// Cerrar closes a turno for a fecha and dispatches the async closure
// report (PDF + email). Report delivery failing never fails the close.
func (h *CierresHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.CerrarTurno(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.dispatcher != nil {
		job := worker.ReporteCierreJobPayload{TurnoID: req.TurnoID, Fecha: req.Fecha}
		if err := h.dispatcher.EnqueueReporteCierre(c.Request.Context(), job); err != nil {
			log.Error().Err(err).Uint("turno_id", req.TurnoID).Msg("failed to enqueue closure report")
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CierresHandler) Obtener(c *gin.Context) {
	turnoID, ok := pathID(c, "turnoId")
	if !ok {
		return
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro fecha requerido"))
		return
	}
	resp, err := h.svc.ObtenerCierre(c.Request.Context(), turnoID, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reporte returns the full 0-99 matrix for a turno+fecha.
func (h *CierresHandler) Reporte(c *gin.Context) {
	turnoID, ok := pathID(c, "turnoId")
	if !ok {
		return
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro fecha requerido"))
		return
	}
	resp, err := h.svc.ObtenerReporte(c.Request.Context(), turnoID, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

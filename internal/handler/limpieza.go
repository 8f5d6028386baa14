package handler

import (
	"net/http"
	"strconv"
	"time"

	"colochas/internal/apierror"
	"colochas/internal/middleware"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
)

type LimpiezaHandler struct {
	svc           service.LimpiezaService
	diasRetencion int
}

func NewLimpiezaHandler(svc service.LimpiezaService, diasRetencion int) *LimpiezaHandler {
	return &LimpiezaHandler{svc: svc, diasRetencion: diasRetencion}
}

func (h *LimpiezaHandler) dias(c *gin.Context) (int, bool) {
	dias := h.diasRetencion
	if raw := c.Query("dias"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("Parametro dias invalido"))
			return 0, false
		}
		dias = n
	}
	return dias, true
}

// Ejecutar runs the retention cleanup on demand.
func (h *LimpiezaHandler) Ejecutar(c *gin.Context) {
	dias, ok := h.dias(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.LimpiarDatosAntiguos(c.Request.Context(), &claims.UserID, dias)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estadisticas is the dry run: counts without deleting.
func (h *LimpiezaHandler) Estadisticas(c *gin.Context) {
	dias, ok := h.dias(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerEstadisticas(c.Request.Context(), dias)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UltimaEjecucion reports when the cleaner last ran, null if never.
func (h *LimpiezaHandler) UltimaEjecucion(c *gin.Context) {
	t, err := h.svc.UltimaEjecucion(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	var valor *string
	if t != nil {
		s := t.Format(time.RFC3339)
		valor = &s
	}
	c.JSON(http.StatusOK, gin.H{"ultima_ejecucion": valor})
}

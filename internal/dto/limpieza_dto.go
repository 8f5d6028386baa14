package dto

// LimpiezaResultado reports per-category deleted row counts from one
// retention run. The same shape (as counts-to-delete) is returned by the
// dry-run statistics query.
type LimpiezaResultado struct {
	VentasEliminadas        int64 `json:"ventas_eliminadas"`
	DetallesEliminados      int64 `json:"detalles_eliminados"`
	AlertasEliminadas       int64 `json:"alertas_eliminadas"`
	AuditoriaEliminada      int64 `json:"auditoria_eliminada"`
	RestriccionesEliminadas int64 `json:"restricciones_eliminadas"`
}

type LimpiezaEstadisticas struct {
	VentasAConsiderar        int64 `json:"ventas_a_considerar"`
	DetallesAConsiderar      int64 `json:"detalles_a_considerar"`
	AlertasAConsiderar       int64 `json:"alertas_a_considerar"`
	AuditoriaAConsiderar     int64 `json:"auditoria_a_considerar"`
	RestriccionesAConsiderar int64 `json:"restricciones_a_considerar"`
}

package dto

type MarcarAlertaRequest struct {
	Accion string `json:"accion" validate:"required,oneof=vista resuelta"`
}

type AlertaResponse struct {
	ID        uint          `json:"id"`
	TurnoID   uint          `json:"turno_id"`
	Fecha     string        `json:"fecha"`
	Tipo      string        `json:"tipo"`
	Mensaje   string        `json:"mensaje"`
	Estado    string        `json:"estado"`
	Turno     *TurnoResumen `json:"turno"`
	CreatedAt string        `json:"created_at"`
}

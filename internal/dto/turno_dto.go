package dto

type CrearTurnoRequest struct {
	Nombre     string `json:"nombre"      validate:"required"`
	Categoria  string `json:"categoria"   validate:"required,oneof=diaria tica"`
	Hora       string `json:"hora"        validate:"required,datetime=15:04"`
	HoraCierre string `json:"hora_cierre" validate:"required,datetime=15:04"`
	// Defaults: TiempoAlerta 10, TiempoBloqueo 5 (minutes).
	TiempoAlerta  *int `json:"tiempo_alerta"  validate:"omitempty,min=1"`
	TiempoBloqueo *int `json:"tiempo_bloqueo" validate:"omitempty,min=1"`
}

type ActualizarTurnoRequest struct {
	Nombre        *string `json:"nombre"`
	Categoria     *string `json:"categoria"   validate:"omitempty,oneof=diaria tica"`
	Hora          *string `json:"hora"        validate:"omitempty,datetime=15:04"`
	HoraCierre    *string `json:"hora_cierre" validate:"omitempty,datetime=15:04"`
	TiempoAlerta  *int    `json:"tiempo_alerta"  validate:"omitempty,min=1"`
	TiempoBloqueo *int    `json:"tiempo_bloqueo" validate:"omitempty,min=1"`
	Estado        *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type TurnoResponse struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"`
	Categoria     string          `json:"categoria"`
	Hora          string          `json:"hora"`
	HoraCierre    string          `json:"hora_cierre"`
	TiempoAlerta  int             `json:"tiempo_alerta"`
	TiempoBloqueo int             `json:"tiempo_bloqueo"`
	Estado        string          `json:"estado"`
	CreatedBy     *UsuarioResumen `json:"created_by,omitempty"`
}

// AlertaCierreResponse answers "is this turno inside its alert or block
// window right now?" for the selling UI.
type AlertaCierreResponse struct {
	TurnoID          uint   `json:"turno_id"`
	Nombre           string `json:"nombre"`
	HoraCierre       string `json:"hora_cierre"`
	EnAlerta         bool   `json:"en_alerta"`
	Bloqueado        bool   `json:"bloqueado"`
	MinutosRestantes int    `json:"minutos_restantes"`
}

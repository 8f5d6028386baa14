package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRestriccionRequest struct {
	TurnoID uint   `json:"turno_id" validate:"required"`
	Numero  int    `json:"numero"   validate:"min=0,max=99"`
	Fecha   string `json:"fecha"    validate:"required,datetime=2006-01-02"`
	// TipoRestriccion defaults to "completo" when omitted.
	TipoRestriccion string           `json:"tipo_restriccion" validate:"omitempty,oneof=completo monto cantidad"`
	LimiteMonto     *decimal.Decimal `json:"limite_monto"`
	LimiteCantidad  *int             `json:"limite_cantidad"`
}

// NumeroConRestriccion is the detailed per-numero form of a batch request.
type NumeroConRestriccion struct {
	Numero          int              `json:"numero" validate:"min=0,max=99"`
	TipoRestriccion string           `json:"tipo_restriccion" validate:"omitempty,oneof=completo monto cantidad"`
	LimiteMonto     *decimal.Decimal `json:"limite_monto"`
	LimiteCantidad  *int             `json:"limite_cantidad"`
}

// CrearMultiplesRequest accepts two shapes: a plain numero list sharing
// the request-level tipo/limits, or a detailed per-numero list. Exactly
// one of Numeros / NumerosConRestricciones must be non-empty; both are
// normalized into one canonical list before reaching the service.
type CrearMultiplesRequest struct {
	TurnoID                 uint                   `json:"turno_id" validate:"required"`
	Fecha                   string                 `json:"fecha"    validate:"required,datetime=2006-01-02"`
	Numeros                 []int                  `json:"numeros" validate:"omitempty,dive,min=0,max=99"`
	NumerosConRestricciones []NumeroConRestriccion `json:"numeros_con_restricciones" validate:"omitempty,dive"`
	TipoRestriccion         string                 `json:"tipo_restriccion" validate:"omitempty,oneof=completo monto cantidad"`
	LimiteMonto             *decimal.Decimal       `json:"limite_monto"`
	LimiteCantidad          *int                   `json:"limite_cantidad"`
}

type EliminarMultiplesRequest struct {
	TurnoID uint   `json:"turno_id" validate:"required"`
	Fecha   string `json:"fecha"    validate:"required,datetime=2006-01-02"`
	Numeros []int  `json:"numeros"  validate:"required,min=1,dive,min=0,max=99"`
}

type VerificarMultiplesRequest struct {
	TurnoID uint   `json:"turno_id" validate:"required"`
	Fecha   string `json:"fecha"    validate:"required,datetime=2006-01-02"`
	Numeros []int  `json:"numeros"  validate:"required,min=1,dive,min=0,max=99"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RestriccionResponse struct {
	ID              uint             `json:"id"`
	TurnoID         uint             `json:"turno_id"`
	Numero          int              `json:"numero"`
	Fecha           string           `json:"fecha"`
	EstaRestringido bool             `json:"esta_restringido"`
	TipoRestriccion string           `json:"tipo_restriccion"`
	LimiteMonto     *decimal.Decimal `json:"limite_monto"`
	LimiteCantidad  *int             `json:"limite_cantidad"`
	Turno           *TurnoResumen    `json:"turno"`
}

// CrearRestriccionResponse distinguishes a fresh row from an idempotent hit.
type CrearRestriccionResponse struct {
	Mensaje     string              `json:"mensaje"`
	YaExistia   bool                `json:"ya_existia"`
	Restriccion RestriccionResponse `json:"restriccion"`
}

type CrearMultiplesResponse struct {
	Mensaje         string                `json:"mensaje"`
	Creadas         []RestriccionResponse `json:"restricciones"`
	Existentes      []RestriccionResponse `json:"restricciones_existentes"`
	TotalCreadas    int                   `json:"total_creadas"`
	TotalExistentes int                   `json:"total_existentes"`
	Total           int                   `json:"total"`
}

type EliminarMultiplesResponse struct {
	Mensaje              string `json:"mensaje"`
	NumerosEliminados    []int  `json:"numeros_eliminados"`
	NumerosNoEncontrados []int  `json:"numeros_no_encontrados"`
	TotalEliminados      int    `json:"total_eliminados"`
	TotalNoEncontrados   int    `json:"total_no_encontrados"`
}

type VerificarResponse struct {
	EstaRestringido bool   `json:"esta_restringido"`
	Numero          int    `json:"numero"`
	TurnoID         uint   `json:"turno_id"`
	TurnoNombre     string `json:"turno_nombre,omitempty"`
	Fecha           string `json:"fecha"`
	Mensaje         string `json:"mensaje"`
}

type VerificarMultiplesResponse struct {
	Resultados          []VerificarResultado `json:"resultados"`
	Total               int                  `json:"total"`
	Restringidos        int                  `json:"restringidos"`
	Disponibles         int                  `json:"disponibles"`
	NumerosRestringidos []int                `json:"numeros_restringidos"`
	NumerosDisponibles  []int                `json:"numeros_disponibles"`
}

type VerificarResultado struct {
	Numero          int  `json:"numero"`
	EstaRestringido bool `json:"esta_restringido"`
}

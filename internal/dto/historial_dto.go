package dto

import "github.com/shopspring/decimal"

// HistorialFilter is bound from the query string of GET /v1/historial/ventas.
// UsuarioID nil means "all sellers"; the authorization layer restricts
// non-privileged callers to their own id before the filter reaches the
// service.
type HistorialFilter struct {
	UsuarioID   *uint  `form:"usuario_id"`
	FechaInicio string `form:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
	TurnoID     *uint  `form:"turno_id"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=200"`
}

type Paginacion struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type HistorialVentasResponse struct {
	Data       []VentaResponse `json:"data"`
	Paginacion Paginacion      `json:"pagination"`
}

// ─── Análisis de números ─────────────────────────────────────────────────────

type AnalisisFilter struct {
	UsuarioID   *uint  `form:"usuario_id"`
	FechaInicio string `form:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
	TurnoID     *uint  `form:"turno_id"`
	Categoria   string `form:"categoria" validate:"omitempty,oneof=diaria tica"`
}

// NumeroAnalisis aggregates one numero across the filtered sales.
type NumeroAnalisis struct {
	Numero             int             `json:"numero"`
	VecesVendido       int             `json:"veces_vendido"`
	TotalMonto         decimal.Decimal `json:"total_monto"`
	TurnosDiferentes   int             `json:"turnos_diferentes"`
	UsuariosDiferentes int             `json:"usuarios_diferentes"`
	Vendido            bool            `json:"vendido"`
}

// AnalisisNumerosResponse always carries exactly 100 entries in Numeros.
type AnalisisNumerosResponse struct {
	Numeros           []NumeroAnalisis `json:"numeros"`
	TotalNumeros      int              `json:"total_numeros"`
	NumerosVendidos   int              `json:"numeros_vendidos"`
	NumerosNoVendidos int              `json:"numeros_no_vendidos"`
}

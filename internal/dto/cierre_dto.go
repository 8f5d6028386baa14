package dto

import "github.com/shopspring/decimal"

type CerrarTurnoRequest struct {
	TurnoID       uint    `json:"turno_id" validate:"required"`
	Fecha         string  `json:"fecha"    validate:"required,datetime=2006-01-02"`
	Observaciones *string `json:"observaciones"`
}

// NumeroMatriz is one cell of the 0–99 closure matrix. Every numero
// appears exactly once, sold or not.
type NumeroMatriz struct {
	Numero     int             `json:"numero"`
	TotalMonto decimal.Decimal `json:"total_monto"`
	Vendido    bool            `json:"vendido"`
}

// ReporteCierreResponse is the full per-numero reconciliation for a
// turno+fecha. Matriz always holds exactly 100 entries.
type ReporteCierreResponse struct {
	Turno       *TurnoResumen   `json:"turno"`
	Fecha       string          `json:"fecha"`
	Matriz      []NumeroMatriz  `json:"matriz"`
	TotalVentas int             `json:"total_ventas"`
	TotalMonto  decimal.Decimal `json:"total_monto"`
	EstaCerrado bool            `json:"esta_cerrado"`
}

type CierreResponse struct {
	TurnoID       uint            `json:"turno_id"`
	Fecha         string          `json:"fecha"`
	EstaCerrado   bool            `json:"esta_cerrado"`
	TotalVentas   int             `json:"total_ventas"`
	TotalMonto    decimal.Decimal `json:"total_monto"`
	CerradoPor    *UsuarioResumen `json:"cerrado_por,omitempty"`
	CerradoEn     string          `json:"cerrado_en,omitempty"`
	Observaciones *string         `json:"observaciones,omitempty"`
}

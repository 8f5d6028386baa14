package dto

import "github.com/shopspring/decimal"

type RangoFechasFilter struct {
	FechaInicio string `form:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"    validate:"required,datetime=2006-01-02"`
}

type NumeroMasVendido struct {
	Numero       int             `json:"numero"`
	VecesVendido int             `json:"veces_vendido"`
	TotalMonto   decimal.Decimal `json:"total_monto"`
}

type EmpleadoVentas struct {
	UsuarioID   uint            `json:"usuario_id"`
	Name        string          `json:"name"`
	TotalVentas int             `json:"total_ventas"`
	TotalMonto  decimal.Decimal `json:"total_monto"`
}

type VentasPorTurno struct {
	TurnoID     uint            `json:"turno_id"`
	TurnoNombre string          `json:"turno_nombre"`
	Cantidad    int             `json:"cantidad"`
	Monto       decimal.Decimal `json:"monto"`
}

type VentasHoyResponse struct {
	TotalVentas    int              `json:"total_ventas"`
	TotalMonto     decimal.Decimal  `json:"total_monto"`
	VentasPorTurno []VentasPorTurno `json:"ventas_por_turno"`
}

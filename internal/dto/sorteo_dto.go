package dto

import "github.com/shopspring/decimal"

type CrearSorteoRequest struct {
	TurnoID       uint             `json:"turno_id"       validate:"required"`
	Fecha         string           `json:"fecha"          validate:"required,datetime=2006-01-02"`
	NumeroGanador int              `json:"numero_ganador" validate:"min=0,max=99"`
	MontoPremio   *decimal.Decimal `json:"monto_premio"`
	Descripcion   *string          `json:"descripcion"`
}

type SorteoResponse struct {
	ID            uint             `json:"id"`
	TurnoID       uint             `json:"turno_id"`
	Fecha         string           `json:"fecha"`
	NumeroGanador int              `json:"numero_ganador"`
	MontoPremio   *decimal.Decimal `json:"monto_premio"`
	Descripcion   *string          `json:"descripcion"`
	Turno         *TurnoResumen    `json:"turno"`
	RealizadoPor  *UsuarioResumen  `json:"realizado_por"`
	RealizadoEn   string           `json:"realizado_en"`
}

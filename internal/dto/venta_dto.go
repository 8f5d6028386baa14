package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DetalleVentaRequest is one line of a sale: a numero and the money on it.
type DetalleVentaRequest struct {
	Numero int             `json:"numero" validate:"min=0,max=99"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
}

type CrearVentaRequest struct {
	TurnoID uint   `json:"turno_id" validate:"required"`
	Fecha   string `json:"fecha"    validate:"required,datetime=2006-01-02"`
	// Duplicate numeros are allowed: a buyer may add to the same numero
	// twice in one ticket; the montos are summed.
	Detalles      []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
	Observaciones *string               `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	Numero int             `json:"numero"`
	Monto  decimal.Decimal `json:"monto"`
}

type TurnoResumen struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	Categoria string `json:"categoria"`
}

type UsuarioResumen struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

type VentaResponse struct {
	ID            uint                   `json:"id"`
	NumeroBoucher string                 `json:"numero_boucher"`
	Fecha         string                 `json:"fecha"`
	Total         decimal.Decimal        `json:"total"`
	Observaciones *string                `json:"observaciones"`
	Turno         *TurnoResumen          `json:"turno"`
	Usuario       *UsuarioResumen        `json:"usuario"`
	Detalles      []DetalleVentaResponse `json:"detalles"`
	CreatedAt     string                 `json:"created_at"`
}

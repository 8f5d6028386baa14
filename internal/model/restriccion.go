package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restriction tipos.
const (
	RestriccionCompleto = "completo" // the numero cannot be sold at all
	RestriccionMonto    = "monto"    // cumulative money on the numero is capped
	RestriccionCantidad = "cantidad" // cumulative sale-line count is capped
)

// TipoRestriccionValido reports whether tipo is one of the known tipos.
func TipoRestriccionValido(tipo string) bool {
	return tipo == RestriccionCompleto || tipo == RestriccionMonto || tipo == RestriccionCantidad
}

// RestriccionNumero blocks or caps sales of a numero for a turno on a fecha.
// At most one row may exist per (TurnoID, Numero, Fecha).
type RestriccionNumero struct {
	ID      uint      `gorm:"primaryKey"`
	TurnoID uint      `gorm:"uniqueIndex:idx_restriccion_turno_numero_fecha;not null"`
	Numero  int       `gorm:"uniqueIndex:idx_restriccion_turno_numero_fecha;not null;check:numero >= 0 AND numero <= 99"`
	Fecha   time.Time `gorm:"type:date;uniqueIndex:idx_restriccion_turno_numero_fecha;not null"`
	// EstaRestringido is the active-blocking flag. The retention cleaner
	// only purges rows with the flag lowered.
	EstaRestringido bool   `gorm:"not null;default:true"`
	TipoRestriccion string `gorm:"type:varchar(10);not null;default:'completo'"`
	// LimiteMonto is required (> 0) when TipoRestriccion is "monto".
	LimiteMonto *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// LimiteCantidad is required (>= 1) when TipoRestriccion is "cantidad".
	LimiteCantidad *int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Turno *Turno `gorm:"foreignKey:TurnoID"`
}

func (RestriccionNumero) TableName() string { return "restricciones_numeros" }

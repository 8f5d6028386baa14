package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CierreTurno is the end-of-shift reconciliation record for a turno+fecha.
// It is a materialized summary of the ventas committed up to closing time;
// the per-numero matrix is always recomputed from ventas, never stored.
type CierreTurno struct {
	ID            uint            `gorm:"primaryKey"`
	TurnoID       uint            `gorm:"uniqueIndex:idx_cierre_turno_fecha;not null"`
	Fecha         time.Time       `gorm:"type:date;uniqueIndex:idx_cierre_turno_fecha;not null"`
	CerradoPor    uint            `gorm:"not null"`
	TotalVentas   int             `gorm:"not null"`
	TotalMonto    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Observaciones *string         `gorm:"type:text"`
	CerradoEn     time.Time

	Turno   *Turno   `gorm:"foreignKey:TurnoID"`
	Usuario *Usuario `gorm:"foreignKey:CerradoPor"`
}

func (CierreTurno) TableName() string { return "cierres_turno" }

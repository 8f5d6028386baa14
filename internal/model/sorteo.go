package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sorteo records the winning numero drawn for a turno+fecha.
// Informational: independent of ventas, at most one per (TurnoID, Fecha).
type Sorteo struct {
	ID            uint             `gorm:"primaryKey"`
	TurnoID       uint             `gorm:"uniqueIndex:idx_sorteo_turno_fecha;not null"`
	Fecha         time.Time        `gorm:"type:date;uniqueIndex:idx_sorteo_turno_fecha;not null"`
	NumeroGanador int              `gorm:"not null;check:numero_ganador >= 0 AND numero_ganador <= 99"`
	MontoPremio   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Descripcion   *string          `gorm:"type:text"`
	RealizadoPor  uint             `gorm:"not null"`
	RealizadoEn   time.Time

	Turno   *Turno   `gorm:"foreignKey:TurnoID"`
	Usuario *Usuario `gorm:"foreignKey:RealizadoPor"`
}

func (Sorteo) TableName() string { return "sorteos" }

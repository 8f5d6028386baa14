package model

import "time"

// TurnosEstandar are the well-known shift names seeded at installation.
// They are never hard-deleted, only deactivated.
var TurnosEstandar = []string{"12 MD", "3 PM", "6 PM", "9 PM", "1 PM", "4:30 PM", "7:30 PM"}

// Turno is a sales shift: a time window during which numeros can be sold
// for a given draw. Hora/HoraCierre are wall-clock times in "15:04" format.
// Categoria: "diaria" | "tica".
type Turno struct {
	ID         uint   `gorm:"primaryKey"`
	Nombre     string `gorm:"uniqueIndex;not null"`
	Categoria  string `gorm:"type:varchar(10);not null;default:'diaria'"`
	Hora       string `gorm:"type:varchar(5);not null"`
	HoraCierre string `gorm:"type:varchar(5);not null"`
	// TiempoAlerta: minutes before HoraCierre at which sellers are warned.
	TiempoAlerta int `gorm:"not null;default:10"`
	// TiempoBloqueo: minutes before HoraCierre after which no new sales are accepted.
	TiempoBloqueo int    `gorm:"not null;default:5"`
	Estado        string `gorm:"type:varchar(10);not null;default:'activo'"` // activo | inactivo
	CreatedByID   *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time

	CreatedBy *Usuario `gorm:"foreignKey:CreatedByID"`
}

func (Turno) TableName() string { return "turnos" }

func (t *Turno) Activo() bool { return t.Estado == "activo" }

// EsEstandar reports whether this turno carries one of the fixed well-known names.
func (t *Turno) EsEstandar() bool {
	for _, n := range TurnosEstandar {
		if t.Nombre == n {
			return true
		}
	}
	return false
}

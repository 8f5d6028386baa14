package model

import "time"

// Config keys used by this service.
const (
	ConfigLimpiezaUltimaEjecucion = "limpieza_ultima_ejecucion"
)

// Configuracion is a key-value system setting. Persisted (rather than held
// in process memory) so that state like the last automatic cleanup run
// survives restarts and is shared across instances.
type Configuracion struct {
	ID          uint   `gorm:"primaryKey"`
	Clave       string `gorm:"uniqueIndex;not null"`
	Valor       string `gorm:"type:text;not null"`
	Tipo        string `gorm:"type:varchar(10);not null;default:'string'"` // string | number | date | bool
	Descripcion *string
	Estado      string `gorm:"type:varchar(10);not null;default:'activo'"`
	UpdatedBy   *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Configuracion) TableName() string { return "configuraciones" }

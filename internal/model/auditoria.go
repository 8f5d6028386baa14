package model

import "time"

// Auditoria is the append-only action log. Rows are written by the write
// paths (ventas, restricciones, cierres, sorteos) and purged by the
// retention cleaner; they are never updated.
type Auditoria struct {
	ID         uint   `gorm:"primaryKey"`
	UsuarioID  *uint  `gorm:"index"`
	Accion     string `gorm:"type:varchar(40);not null"`
	Tabla      string `gorm:"type:varchar(40);not null"`
	RegistroID *uint
	// Detalles holds a small JSON blob describing the change.
	Detalles  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

func (Auditoria) TableName() string { return "auditoria" }

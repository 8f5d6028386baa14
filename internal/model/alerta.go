package model

import "time"

// Alerta estados.
const (
	AlertaActiva   = "activa"
	AlertaVista    = "vista"
	AlertaResuelta = "resuelta"
)

// Alerta notifies a seller that a turno is about to close (or other
// operational events). Created by the alerta cron, consumed per-user.
type Alerta struct {
	ID         uint      `gorm:"primaryKey"`
	UsuarioID  uint      `gorm:"index;not null"`
	TurnoID    uint      `gorm:"index;not null"`
	Fecha      time.Time `gorm:"type:date;not null"`
	Tipo       string    `gorm:"type:varchar(20);not null"` // cierre_turno
	Mensaje    string    `gorm:"type:text;not null"`
	Estado     string    `gorm:"type:varchar(10);not null;default:'activa'"`
	VistaEn    *time.Time
	ResueltaEn *time.Time
	CreatedAt  time.Time

	Turno *Turno `gorm:"foreignKey:TurnoID"`
}

func (Alerta) TableName() string { return "alertas" }

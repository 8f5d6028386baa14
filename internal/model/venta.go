package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta is a multi-line sale recorded against a turno and fecha.
// Total always equals the sum of its Detalles' Monto; both are written
// inside the same transaction and never updated afterwards.
type Venta struct {
	ID        uint            `gorm:"primaryKey"`
	TurnoID   uint            `gorm:"index;not null"`
	UsuarioID uint            `gorm:"index;not null"`
	Fecha     time.Time       `gorm:"type:date;index;not null"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// NumeroBoucher is the receipt identifier handed to the buyer.
	// Globally unique and immutable once assigned.
	NumeroBoucher string  `gorm:"uniqueIndex;not null"`
	Observaciones *string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Turno    *Turno         `gorm:"foreignKey:TurnoID"`
	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
	Detalles []DetalleVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one line of a venta: a numero in [0,99] and the money
// put on it. Duplicate numeros in a request are merged into a single
// detalle before persisting, so (VentaID, Numero) is unique in practice.
type DetalleVenta struct {
	ID      uint            `gorm:"primaryKey"`
	VentaID uint            `gorm:"index;not null"`
	Numero  int             `gorm:"not null;check:numero >= 0 AND numero <= 99"`
	Monto   decimal.Decimal `gorm:"type:decimal(12,2);not null;check:monto > 0"`
}

func (DetalleVenta) TableName() string { return "detalles_venta" }

package model

import "time"

// Usuario is the read model of an account managed by the auth subsystem.
// This service never creates or authenticates users; it only references
// them as sellers and hydrates their name/email in responses.
type Usuario struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null"`
	Email     *string `gorm:"uniqueIndex"`
	Estado    string  `gorm:"type:varchar(10);not null;default:'activo'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "users" }

package repository

import (
	"context"
	"time"

	"colochas/internal/model"

	"gorm.io/gorm"
)

type CierreRepository interface {
	Create(ctx context.Context, c *model.CierreTurno) error
	FindByKey(ctx context.Context, turnoID uint, fecha time.Time) (*model.CierreTurno, error)
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) Create(ctx context.Context, c *model.CierreTurno) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cierreRepo) FindByKey(ctx context.Context, turnoID uint, fecha time.Time) (*model.CierreTurno, error) {
	var c model.CierreTurno
	err := r.db.WithContext(ctx).
		Preload("Turno").Preload("Usuario").
		Where("turno_id = ? AND fecha = ?", turnoID, fecha).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

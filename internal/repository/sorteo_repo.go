package repository

import (
	"context"
	"time"

	"colochas/internal/model"

	"gorm.io/gorm"
)

type SorteoRepository interface {
	Create(ctx context.Context, s *model.Sorteo) error
	FindByID(ctx context.Context, id uint) (*model.Sorteo, error)
	FindByKey(ctx context.Context, turnoID uint, fecha time.Time) (*model.Sorteo, error)
	FindAll(ctx context.Context, fecha *time.Time) ([]model.Sorteo, error)
}

type sorteoRepo struct{ db *gorm.DB }

func NewSorteoRepository(db *gorm.DB) SorteoRepository { return &sorteoRepo{db: db} }

func (r *sorteoRepo) Create(ctx context.Context, s *model.Sorteo) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sorteoRepo) FindByID(ctx context.Context, id uint) (*model.Sorteo, error) {
	var s model.Sorteo
	err := r.db.WithContext(ctx).Preload("Turno").Preload("Usuario").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sorteoRepo) FindByKey(ctx context.Context, turnoID uint, fecha time.Time) (*model.Sorteo, error) {
	var s model.Sorteo
	err := r.db.WithContext(ctx).
		Where("turno_id = ? AND fecha = ?", turnoID, fecha).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sorteoRepo) FindAll(ctx context.Context, fecha *time.Time) ([]model.Sorteo, error) {
	var sorteos []model.Sorteo
	q := r.db.WithContext(ctx).Model(&model.Sorteo{})
	if fecha != nil {
		q = q.Where("fecha = ?", *fecha)
	}
	err := q.Preload("Turno").Preload("Usuario").
		Order("fecha DESC").Order("realizado_en DESC").
		Find(&sorteos).Error
	return sorteos, err
}

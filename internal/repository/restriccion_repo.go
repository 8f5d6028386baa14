package repository

import (
	"context"
	"time"

	"colochas/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestriccionRepository interface {
	Create(ctx context.Context, r *model.RestriccionNumero) error
	FindByID(ctx context.Context, id uint) (*model.RestriccionNumero, error)
	FindByKey(ctx context.Context, turnoID uint, numero int, fecha time.Time) (*model.RestriccionNumero, error)
	// FindForNumerosForUpdate loads the restriction rows matching the given
	// numeros with SELECT ... FOR UPDATE. Locking these rows serializes
	// concurrent sales that share a capped numero; it must run inside the
	// sale transaction.
	FindForNumerosForUpdate(ctx context.Context, tx *gorm.DB, turnoID uint, fecha time.Time, numeros []int) ([]model.RestriccionNumero, error)
	FindAll(ctx context.Context, turnoID *uint, fecha *time.Time) ([]model.RestriccionNumero, error)
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type restriccionRepo struct{ db *gorm.DB }

func NewRestriccionRepository(db *gorm.DB) RestriccionRepository { return &restriccionRepo{db: db} }

func (r *restriccionRepo) DB() *gorm.DB { return r.db }

func (r *restriccionRepo) Create(ctx context.Context, m *model.RestriccionNumero) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *restriccionRepo) FindByID(ctx context.Context, id uint) (*model.RestriccionNumero, error) {
	var m model.RestriccionNumero
	err := r.db.WithContext(ctx).Preload("Turno").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *restriccionRepo) FindByKey(ctx context.Context, turnoID uint, numero int, fecha time.Time) (*model.RestriccionNumero, error) {
	var m model.RestriccionNumero
	err := r.db.WithContext(ctx).
		Preload("Turno").
		Where("turno_id = ? AND numero = ? AND fecha = ?", turnoID, numero, fecha).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *restriccionRepo) FindForNumerosForUpdate(ctx context.Context, tx *gorm.DB, turnoID uint, fecha time.Time, numeros []int) ([]model.RestriccionNumero, error) {
	var rows []model.RestriccionNumero
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("turno_id = ? AND fecha = ? AND numero IN ?", turnoID, fecha, numeros).
		Find(&rows).Error
	return rows, err
}

func (r *restriccionRepo) FindAll(ctx context.Context, turnoID *uint, fecha *time.Time) ([]model.RestriccionNumero, error) {
	var rows []model.RestriccionNumero
	q := r.db.WithContext(ctx).Model(&model.RestriccionNumero{})
	if turnoID != nil {
		q = q.Where("turno_id = ?", *turnoID)
	}
	if fecha != nil {
		q = q.Where("fecha = ?", *fecha)
	}
	err := q.Preload("Turno").
		Order("fecha DESC").Order("numero ASC").
		Find(&rows).Error
	return rows, err
}

func (r *restriccionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.RestriccionNumero{}, id).Error
}

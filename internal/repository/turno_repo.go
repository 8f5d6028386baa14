package repository

import (
	"context"

	"colochas/internal/model"

	"gorm.io/gorm"
)

type TurnoRepository interface {
	Create(ctx context.Context, t *model.Turno) error
	FindByID(ctx context.Context, id uint) (*model.Turno, error)
	FindAll(ctx context.Context, categoria string, includeInactivos bool) ([]model.Turno, error)
	Update(ctx context.Context, t *model.Turno) error
	Delete(ctx context.Context, id uint) error
	CountVentas(ctx context.Context, turnoID uint) (int64, error)
	CountRestricciones(ctx context.Context, turnoID uint) (int64, error)
	ListActivos(ctx context.Context) ([]model.Turno, error)
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Create(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindByID(ctx context.Context, id uint) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Preload("CreatedBy").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) FindAll(ctx context.Context, categoria string, includeInactivos bool) ([]model.Turno, error) {
	var turnos []model.Turno
	q := r.db.WithContext(ctx).Model(&model.Turno{})
	if !includeInactivos {
		q = q.Where("estado = ?", "activo")
	}
	if categoria != "" {
		q = q.Where("categoria = ?", categoria)
	}
	err := q.Preload("CreatedBy").
		Order("categoria ASC").Order("hora ASC").Order("nombre ASC").
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) Update(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *turnoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Turno{}, id).Error
}

func (r *turnoRepo) CountVentas(ctx context.Context, turnoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).Where("turno_id = ?", turnoID).Count(&n).Error
	return n, err
}

func (r *turnoRepo) CountRestricciones(ctx context.Context, turnoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RestriccionNumero{}).Where("turno_id = ?", turnoID).Count(&n).Error
	return n, err
}

// ListActivos returns all active turnos without preloads; used by the
// alerta cron on every tick.
func (r *turnoRepo) ListActivos(ctx context.Context) ([]model.Turno, error) {
	var turnos []model.Turno
	err := r.db.WithContext(ctx).Where("estado = ?", "activo").Find(&turnos).Error
	return turnos, err
}

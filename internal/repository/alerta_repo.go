package repository

import (
	"context"
	"time"

	"colochas/internal/model"

	"gorm.io/gorm"
)

type AlertaRepository interface {
	Create(ctx context.Context, a *model.Alerta) error
	// FindByIDForUsuario scopes lookup to the owning user: alerts are
	// private to the seller they were raised for.
	FindByIDForUsuario(ctx context.Context, id, usuarioID uint) (*model.Alerta, error)
	List(ctx context.Context, usuarioID uint, estado string) ([]model.Alerta, error)
	Update(ctx context.Context, a *model.Alerta) error
	Exists(ctx context.Context, usuarioID, turnoID uint, fecha time.Time, tipo string) (bool, error)
}

type alertaRepo struct{ db *gorm.DB }

func NewAlertaRepository(db *gorm.DB) AlertaRepository { return &alertaRepo{db: db} }

func (r *alertaRepo) Create(ctx context.Context, a *model.Alerta) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alertaRepo) FindByIDForUsuario(ctx context.Context, id, usuarioID uint) (*model.Alerta, error) {
	var a model.Alerta
	err := r.db.WithContext(ctx).
		Preload("Turno").
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertaRepo) List(ctx context.Context, usuarioID uint, estado string) ([]model.Alerta, error) {
	var alertas []model.Alerta
	q := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID)
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Preload("Turno").Order("created_at DESC").Find(&alertas).Error
	return alertas, err
}

func (r *alertaRepo) Update(ctx context.Context, a *model.Alerta) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *alertaRepo) Exists(ctx context.Context, usuarioID, turnoID uint, fecha time.Time, tipo string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Alerta{}).
		Where("usuario_id = ? AND turno_id = ? AND fecha = ? AND tipo = ?", usuarioID, turnoID, fecha, tipo).
		Count(&n).Error
	return n > 0, err
}

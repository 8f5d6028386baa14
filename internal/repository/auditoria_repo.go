package repository

import (
	"context"

	"colochas/internal/model"

	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, a *model.Auditoria) error
	// CreateTx writes inside an already-open transaction so the audit row
	// commits or rolls back with the operation it describes.
	CreateTx(ctx context.Context, tx *gorm.DB, a *model.Auditoria) error
	List(ctx context.Context, tabla string, limit int) ([]model.Auditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, a *model.Auditoria) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auditoriaRepo) CreateTx(ctx context.Context, tx *gorm.DB, a *model.Auditoria) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (r *auditoriaRepo) List(ctx context.Context, tabla string, limit int) ([]model.Auditoria, error) {
	var rows []model.Auditoria
	q := r.db.WithContext(ctx).Model(&model.Auditoria{})
	if tabla != "" {
		q = q.Where("tabla = ?", tabla)
	}
	if limit <= 0 {
		limit = 100
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

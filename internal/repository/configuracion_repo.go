package repository

import (
	"context"

	"colochas/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfiguracionRepository interface {
	Create(ctx context.Context, c *model.Configuracion) error
	FindByID(ctx context.Context, id uint) (*model.Configuracion, error)
	FindByClave(ctx context.Context, clave string) (*model.Configuracion, error)
	FindAll(ctx context.Context) ([]model.Configuracion, error)
	Update(ctx context.Context, c *model.Configuracion) error
	// Upsert writes clave=valor atomically (ON CONFLICT DO UPDATE), so
	// concurrent instances racing on the same key cannot duplicate it.
	Upsert(ctx context.Context, c *model.Configuracion) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Create(ctx context.Context, c *model.Configuracion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *configuracionRepo) FindByID(ctx context.Context, id uint) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracionRepo) FindByClave(ctx context.Context, clave string) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracionRepo) FindAll(ctx context.Context) ([]model.Configuracion, error) {
	var rows []model.Configuracion
	err := r.db.WithContext(ctx).
		Where("estado = ?", "activo").
		Order("clave ASC").
		Find(&rows).Error
	return rows, err
}

func (r *configuracionRepo) Update(ctx context.Context, c *model.Configuracion) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *configuracionRepo) Upsert(ctx context.Context, c *model.Configuracion) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valor", "tipo", "updated_by", "updated_at"}),
		}).
		Create(c).Error
}

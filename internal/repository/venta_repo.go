package repository

import (
	"context"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NumeroTotalRow is one GROUP BY numero aggregation row.
type NumeroTotalRow struct {
	Numero     int
	TotalMonto decimal.Decimal
}

// AnalisisRow is one row of the per-numero analysis aggregation.
type AnalisisRow struct {
	Numero             int
	VecesVendido       int
	TotalMonto         decimal.Decimal
	TurnosDiferentes   int
	UsuariosDiferentes int
}

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uint) (*model.Venta, error)
	FindByBoucher(ctx context.Context, numeroBoucher string) (*model.Venta, error)
	Delete(ctx context.Context, id uint) error
	// SumDetalleNumero returns the committed money and sale-line count for
	// one numero on (turnoID, fecha). Called inside the sale transaction
	// with the restriction row already locked.
	SumDetalleNumero(ctx context.Context, tx *gorm.DB, turnoID uint, fecha time.Time, numero int) (decimal.Decimal, int64, error)
	// MatrizNumeros returns per-numero totals for the closure report;
	// numeros with no sales are absent and filled in by the service.
	MatrizNumeros(ctx context.Context, turnoID uint, fecha time.Time) ([]NumeroTotalRow, error)
	TotalesTurnoFecha(ctx context.Context, turnoID uint, fecha time.Time) (int64, decimal.Decimal, error)
	List(ctx context.Context, filter dto.HistorialFilter) ([]model.Venta, int64, error)
	AnalisisNumeros(ctx context.Context, filter dto.AnalisisFilter) ([]AnalisisRow, error)
	ListByFecha(ctx context.Context, fecha time.Time) ([]model.Venta, error)
	DistinctVendedores(ctx context.Context, turnoID uint, fecha time.Time) ([]uint, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uint) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Turno").Preload("Usuario").Preload("Detalles").
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByBoucher(ctx context.Context, numeroBoucher string) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Turno").Preload("Usuario").Preload("Detalles").
		Where("numero_boucher = ?", numeroBoucher).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) Delete(ctx context.Context, id uint) error {
	// Children first; the FK cascade covers fresh schemas but not ones
	// migrated without the constraint.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venta_id = ?", id).Delete(&model.DetalleVenta{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Venta{}, id).Error
	})
}

func (r *ventaRepo) SumDetalleNumero(ctx context.Context, tx *gorm.DB, turnoID uint, fecha time.Time, numero int) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := tx.WithContext(ctx).
		Model(&model.DetalleVenta{}).
		Select("COALESCE(SUM(detalles_venta.monto), 0) AS total, COUNT(*) AS count").
		Joins("JOIN ventas ON ventas.id = detalles_venta.venta_id").
		Where("ventas.turno_id = ? AND ventas.fecha = ? AND detalles_venta.numero = ?", turnoID, fecha, numero).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *ventaRepo) MatrizNumeros(ctx context.Context, turnoID uint, fecha time.Time) ([]NumeroTotalRow, error) {
	var rows []NumeroTotalRow
	err := r.db.WithContext(ctx).
		Model(&model.DetalleVenta{}).
		Select("detalles_venta.numero AS numero, SUM(detalles_venta.monto) AS total_monto").
		Joins("JOIN ventas ON ventas.id = detalles_venta.venta_id").
		Where("ventas.turno_id = ? AND ventas.fecha = ?", turnoID, fecha).
		Group("detalles_venta.numero").
		Order("numero ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) TotalesTurnoFecha(ctx context.Context, turnoID uint, fecha time.Time) (int64, decimal.Decimal, error) {
	var row struct {
		Cantidad int64
		Total    decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.Venta{}).
		Select("COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total").
		Where("turno_id = ? AND fecha = ?", turnoID, fecha).
		Scan(&row).Error
	return row.Cantidad, row.Total, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.HistorialFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *filter.UsuarioID)
	}
	if filter.TurnoID != nil {
		q = q.Where("turno_id = ?", *filter.TurnoID)
	}
	if filter.FechaInicio != "" {
		q = q.Where("fecha >= ?", filter.FechaInicio)
	}
	if filter.FechaFin != "" {
		q = q.Where("fecha <= ?", filter.FechaFin)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Turno").Preload("Usuario").Preload("Detalles").
		Order("fecha DESC").Order("id DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) AnalisisNumeros(ctx context.Context, filter dto.AnalisisFilter) ([]AnalisisRow, error) {
	var rows []AnalisisRow
	q := r.db.WithContext(ctx).
		Model(&model.DetalleVenta{}).
		Select(`detalles_venta.numero AS numero,
			COUNT(DISTINCT detalles_venta.venta_id) AS veces_vendido,
			SUM(detalles_venta.monto) AS total_monto,
			COUNT(DISTINCT ventas.turno_id) AS turnos_diferentes,
			COUNT(DISTINCT ventas.usuario_id) AS usuarios_diferentes`).
		Joins("JOIN ventas ON ventas.id = detalles_venta.venta_id").
		Joins("JOIN turnos ON turnos.id = ventas.turno_id")

	if filter.UsuarioID != nil {
		q = q.Where("ventas.usuario_id = ?", *filter.UsuarioID)
	}
	if filter.TurnoID != nil {
		q = q.Where("ventas.turno_id = ?", *filter.TurnoID)
	}
	if filter.FechaInicio != "" {
		q = q.Where("ventas.fecha >= ?", filter.FechaInicio)
	}
	if filter.FechaFin != "" {
		q = q.Where("ventas.fecha <= ?", filter.FechaFin)
	}
	if filter.Categoria != "" {
		q = q.Where("turnos.categoria = ?", filter.Categoria)
	}

	err := q.Group("detalles_venta.numero").Order("numero ASC").Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) ListByFecha(ctx context.Context, fecha time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Turno").
		Where("fecha = ?", fecha).
		Find(&ventas).Error
	return ventas, err
}

// DistinctVendedores lists the sellers who recorded ventas for a
// turno+fecha; the alerta cron notifies exactly this set.
func (r *ventaRepo) DistinctVendedores(ctx context.Context, turnoID uint, fecha time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.Venta{}).
		Distinct("usuario_id").
		Where("turno_id = ? AND fecha = ?", turnoID, fecha).
		Pluck("usuario_id", &ids).Error
	return ids, err
}

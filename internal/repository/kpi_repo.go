package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type NumeroVendidoRow struct {
	Numero       int
	VecesVendido int
	TotalMonto   decimal.Decimal
}

type EmpleadoVentasRow struct {
	UsuarioID   uint
	Name        string
	TotalVentas int
	TotalMonto  decimal.Decimal
}

// KpiRepository serves the dashboard aggregations. Read-only.
type KpiRepository interface {
	NumerosMasVendidos(ctx context.Context, inicio, fin time.Time, limit int) ([]NumeroVendidoRow, error)
	EmpleadosMasVentas(ctx context.Context, inicio, fin time.Time, limit int) ([]EmpleadoVentasRow, error)
}

type kpiRepo struct{ db *gorm.DB }

func NewKpiRepository(db *gorm.DB) KpiRepository { return &kpiRepo{db: db} }

func (r *kpiRepo) NumerosMasVendidos(ctx context.Context, inicio, fin time.Time, limit int) ([]NumeroVendidoRow, error) {
	var rows []NumeroVendidoRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT dv.numero AS numero,
		       COUNT(DISTINCT dv.venta_id) AS veces_vendido,
		       SUM(dv.monto) AS total_monto
		FROM detalles_venta dv
		JOIN ventas v ON v.id = dv.venta_id
		WHERE v.fecha BETWEEN ? AND ?
		GROUP BY dv.numero
		ORDER BY total_monto DESC, veces_vendido DESC
		LIMIT ?`, inicio, fin, limit).Scan(&rows).Error
	return rows, err
}

func (r *kpiRepo) EmpleadosMasVentas(ctx context.Context, inicio, fin time.Time, limit int) ([]EmpleadoVentasRow, error) {
	var rows []EmpleadoVentasRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT v.usuario_id AS usuario_id,
		       u.name AS name,
		       COUNT(*) AS total_ventas,
		       SUM(v.total) AS total_monto
		FROM ventas v
		JOIN users u ON u.id = v.usuario_id
		WHERE v.fecha BETWEEN ? AND ?
		GROUP BY v.usuario_id, u.name
		ORDER BY total_monto DESC
		LIMIT ?`, inicio, fin, limit).Scan(&rows).Error
	return rows, err
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// LimpiezaRepository runs the retention deletes. Each method is a single
// statement in its own implicit transaction: a failure in one category
// must not roll back the others.
type LimpiezaRepository interface {
	DeleteDetallesAntiguos(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteVentasAntiguas(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAlertasResueltas(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAuditoriaAntigua(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteRestriccionesInactivas(ctx context.Context, cutoff time.Time) (int64, error)

	CountDetallesAntiguos(ctx context.Context, cutoff time.Time) (int64, error)
	CountVentasAntiguas(ctx context.Context, cutoff time.Time) (int64, error)
	CountAlertasResueltas(ctx context.Context, cutoff time.Time) (int64, error)
	CountAuditoriaAntigua(ctx context.Context, cutoff time.Time) (int64, error)
	CountRestriccionesInactivas(ctx context.Context, cutoff time.Time) (int64, error)
}

type limpiezaRepo struct{ db *gorm.DB }

func NewLimpiezaRepository(db *gorm.DB) LimpiezaRepository { return &limpiezaRepo{db: db} }

// Detalles go first: they reference ventas and the FK may not cascade on
// schemas migrated before the constraint existed.
func (r *limpiezaRepo) DeleteDetallesAntiguos(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM detalles_venta WHERE venta_id IN (SELECT id FROM ventas WHERE fecha < ?)`, cutoff)
	return res.RowsAffected, res.Error
}

func (r *limpiezaRepo) DeleteVentasAntiguas(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM ventas WHERE fecha < ?`, cutoff)
	return res.RowsAffected, res.Error
}

func (r *limpiezaRepo) DeleteAlertasResueltas(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM alertas WHERE estado = 'resuelta' AND resuelta_en < ?`, cutoff)
	return res.RowsAffected, res.Error
}

func (r *limpiezaRepo) DeleteAuditoriaAntigua(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM auditoria WHERE created_at < ?`, cutoff)
	return res.RowsAffected, res.Error
}

func (r *limpiezaRepo) DeleteRestriccionesInactivas(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM restricciones_numeros WHERE fecha < ? AND esta_restringido = false`, cutoff)
	return res.RowsAffected, res.Error
}

func (r *limpiezaRepo) count(ctx context.Context, query string, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw(query, cutoff).Scan(&n).Error
	return n, err
}

func (r *limpiezaRepo) CountDetallesAntiguos(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM detalles_venta WHERE venta_id IN (SELECT id FROM ventas WHERE fecha < ?)`, cutoff)
}

func (r *limpiezaRepo) CountVentasAntiguas(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM ventas WHERE fecha < ?`, cutoff)
}

func (r *limpiezaRepo) CountAlertasResueltas(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM alertas WHERE estado = 'resuelta' AND resuelta_en < ?`, cutoff)
}

func (r *limpiezaRepo) CountAuditoriaAntigua(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM auditoria WHERE created_at < ?`, cutoff)
}

func (r *limpiezaRepo) CountRestriccionesInactivas(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM restricciones_numeros WHERE fecha < ? AND esta_restringido = false`, cutoff)
}

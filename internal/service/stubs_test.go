package service

// stubs_test.go
// In-memory repository stubs shared by the service tests. They honor the
// same contracts as the GORM implementations: gorm.ErrRecordNotFound on
// misses and gorm.ErrDuplicatedKey on unique-index violations.

import (
	"context"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"
	"colochas/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── TurnoRepository ───────────────────────────────────────────────────────────

type stubTurnoRepo struct {
	turnos map[uint]*model.Turno
	nextID uint

	ventasPorTurno        map[uint]int64
	restriccionesPorTurno map[uint]int64
}

func newStubTurnoRepo() *stubTurnoRepo {
	return &stubTurnoRepo{
		turnos:                make(map[uint]*model.Turno),
		nextID:                1,
		ventasPorTurno:        make(map[uint]int64),
		restriccionesPorTurno: make(map[uint]int64),
	}
}

func (r *stubTurnoRepo) Create(_ context.Context, t *model.Turno) error {
	for _, existing := range r.turnos {
		if existing.Nombre == t.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	t.ID = r.nextID
	r.nextID++
	cloned := *t
	r.turnos[t.ID] = &cloned
	return nil
}

func (r *stubTurnoRepo) FindByID(_ context.Context, id uint) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *t
	return &cloned, nil
}

func (r *stubTurnoRepo) FindAll(_ context.Context, categoria string, includeInactivos bool) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		if categoria != "" && t.Categoria != categoria {
			continue
		}
		if !includeInactivos && !t.Activo() {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTurnoRepo) Update(_ context.Context, t *model.Turno) error {
	if _, ok := r.turnos[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, existing := range r.turnos {
		if id != t.ID && existing.Nombre == t.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	cloned := *t
	r.turnos[t.ID] = &cloned
	return nil
}

func (r *stubTurnoRepo) Delete(_ context.Context, id uint) error {
	delete(r.turnos, id)
	return nil
}

func (r *stubTurnoRepo) CountVentas(_ context.Context, turnoID uint) (int64, error) {
	return r.ventasPorTurno[turnoID], nil
}

func (r *stubTurnoRepo) CountRestricciones(_ context.Context, turnoID uint) (int64, error) {
	return r.restriccionesPorTurno[turnoID], nil
}

func (r *stubTurnoRepo) ListActivos(_ context.Context) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		if t.Activo() {
			out = append(out, *t)
		}
	}
	return out, nil
}

var _ repository.TurnoRepository = (*stubTurnoRepo)(nil)

// ── VentaRepository ───────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uint]*model.Venta
	nextID uint
	// createErrs are returned (and consumed) by Create before any insert,
	// used to exercise the boucher collision retry.
	createErrs []error
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uint]*model.Venta), nextID: 1}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range r.ventas {
		if existing.NumeroBoucher == v.NumeroBoucher {
			return gorm.ErrDuplicatedKey
		}
	}
	v.ID = r.nextID
	r.nextID++
	v.CreatedAt = time.Now()
	cloned := *v
	cloned.Detalles = append([]model.DetalleVenta(nil), v.Detalles...)
	r.ventas[v.ID] = &cloned
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *v
	cloned.Detalles = append([]model.DetalleVenta(nil), v.Detalles...)
	return &cloned, nil
}

func (r *stubVentaRepo) FindByBoucher(_ context.Context, boucher string) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.NumeroBoucher == boucher {
			cloned := *v
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.ventas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) SumDetalleNumero(_ context.Context, _ *gorm.DB, turnoID uint, fecha time.Time, numero int) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var count int64
	for _, v := range r.ventas {
		if v.TurnoID != turnoID || !v.Fecha.Equal(fecha) {
			continue
		}
		for _, d := range v.Detalles {
			if d.Numero == numero {
				total = total.Add(d.Monto)
				count++
			}
		}
	}
	return total, count, nil
}

func (r *stubVentaRepo) MatrizNumeros(_ context.Context, turnoID uint, fecha time.Time) ([]repository.NumeroTotalRow, error) {
	totals := make(map[int]decimal.Decimal)
	for _, v := range r.ventas {
		if v.TurnoID != turnoID || !v.Fecha.Equal(fecha) {
			continue
		}
		for _, d := range v.Detalles {
			totals[d.Numero] = totals[d.Numero].Add(d.Monto)
		}
	}
	var rows []repository.NumeroTotalRow
	for numero, monto := range totals {
		rows = append(rows, repository.NumeroTotalRow{Numero: numero, TotalMonto: monto})
	}
	return rows, nil
}

func (r *stubVentaRepo) TotalesTurnoFecha(_ context.Context, turnoID uint, fecha time.Time) (int64, decimal.Decimal, error) {
	var count int64
	total := decimal.Zero
	for _, v := range r.ventas {
		if v.TurnoID == turnoID && v.Fecha.Equal(fecha) {
			count++
			total = total.Add(v.Total)
		}
	}
	return count, total, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.HistorialFilter) ([]model.Venta, int64, error) {
	var all []model.Venta
	for _, v := range r.ventas {
		if filter.UsuarioID != nil && v.UsuarioID != *filter.UsuarioID {
			continue
		}
		if filter.TurnoID != nil && v.TurnoID != *filter.TurnoID {
			continue
		}
		all = append(all, *v)
	}
	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubVentaRepo) AnalisisNumeros(_ context.Context, filter dto.AnalisisFilter) ([]repository.AnalisisRow, error) {
	type agg struct {
		veces    int
		monto    decimal.Decimal
		turnos   map[uint]bool
		usuarios map[uint]bool
	}
	byNumero := make(map[int]*agg)
	for _, v := range r.ventas {
		if filter.UsuarioID != nil && v.UsuarioID != *filter.UsuarioID {
			continue
		}
		if filter.TurnoID != nil && v.TurnoID != *filter.TurnoID {
			continue
		}
		for _, d := range v.Detalles {
			a := byNumero[d.Numero]
			if a == nil {
				a = &agg{monto: decimal.Zero, turnos: map[uint]bool{}, usuarios: map[uint]bool{}}
				byNumero[d.Numero] = a
			}
			a.veces++
			a.monto = a.monto.Add(d.Monto)
			a.turnos[v.TurnoID] = true
			a.usuarios[v.UsuarioID] = true
		}
	}
	var rows []repository.AnalisisRow
	for numero, a := range byNumero {
		rows = append(rows, repository.AnalisisRow{
			Numero:             numero,
			VecesVendido:       a.veces,
			TotalMonto:         a.monto,
			TurnosDiferentes:   len(a.turnos),
			UsuariosDiferentes: len(a.usuarios),
		})
	}
	return rows, nil
}

func (r *stubVentaRepo) ListByFecha(_ context.Context, fecha time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.Fecha.Equal(fecha) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) DistinctVendedores(_ context.Context, turnoID uint, fecha time.Time) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, v := range r.ventas {
		if v.TurnoID == turnoID && v.Fecha.Equal(fecha) && !seen[v.UsuarioID] {
			seen[v.UsuarioID] = true
			ids = append(ids, v.UsuarioID)
		}
	}
	return ids, nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── RestriccionRepository ─────────────────────────────────────────────────────

type stubRestriccionRepo struct {
	restricciones map[uint]*model.RestriccionNumero
	nextID        uint
}

func newStubRestriccionRepo() *stubRestriccionRepo {
	return &stubRestriccionRepo{restricciones: make(map[uint]*model.RestriccionNumero), nextID: 1}
}

func (r *stubRestriccionRepo) DB() *gorm.DB { return nil }

func (r *stubRestriccionRepo) Create(_ context.Context, m *model.RestriccionNumero) error {
	for _, existing := range r.restricciones {
		if existing.TurnoID == m.TurnoID && existing.Numero == m.Numero && existing.Fecha.Equal(m.Fecha) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.ID = r.nextID
	r.nextID++
	cloned := *m
	r.restricciones[m.ID] = &cloned
	return nil
}

func (r *stubRestriccionRepo) FindByID(_ context.Context, id uint) (*model.RestriccionNumero, error) {
	m, ok := r.restricciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *m
	return &cloned, nil
}

func (r *stubRestriccionRepo) FindByKey(_ context.Context, turnoID uint, numero int, fecha time.Time) (*model.RestriccionNumero, error) {
	for _, m := range r.restricciones {
		if m.TurnoID == turnoID && m.Numero == numero && m.Fecha.Equal(fecha) {
			cloned := *m
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRestriccionRepo) FindForNumerosForUpdate(_ context.Context, _ *gorm.DB, turnoID uint, fecha time.Time, numeros []int) ([]model.RestriccionNumero, error) {
	wanted := make(map[int]bool, len(numeros))
	for _, n := range numeros {
		wanted[n] = true
	}
	var out []model.RestriccionNumero
	for _, m := range r.restricciones {
		if m.TurnoID == turnoID && m.Fecha.Equal(fecha) && wanted[m.Numero] {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubRestriccionRepo) FindAll(_ context.Context, turnoID *uint, fecha *time.Time) ([]model.RestriccionNumero, error) {
	var out []model.RestriccionNumero
	for _, m := range r.restricciones {
		if turnoID != nil && m.TurnoID != *turnoID {
			continue
		}
		if fecha != nil && !m.Fecha.Equal(*fecha) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubRestriccionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.restricciones[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.restricciones, id)
	return nil
}

var _ repository.RestriccionRepository = (*stubRestriccionRepo)(nil)

// ── AuditoriaRepository ───────────────────────────────────────────────────────

type stubAuditoriaRepo struct {
	registros []model.Auditoria
}

func newStubAuditoriaRepo() *stubAuditoriaRepo { return &stubAuditoriaRepo{} }

func (r *stubAuditoriaRepo) Create(_ context.Context, a *model.Auditoria) error {
	a.ID = uint(len(r.registros) + 1)
	r.registros = append(r.registros, *a)
	return nil
}

func (r *stubAuditoriaRepo) CreateTx(ctx context.Context, _ *gorm.DB, a *model.Auditoria) error {
	return r.Create(ctx, a)
}

func (r *stubAuditoriaRepo) List(_ context.Context, tabla string, limit int) ([]model.Auditoria, error) {
	var out []model.Auditoria
	for _, a := range r.registros {
		if tabla != "" && a.Tabla != tabla {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

var _ repository.AuditoriaRepository = (*stubAuditoriaRepo)(nil)

// ── CierreRepository ──────────────────────────────────────────────────────────

type stubCierreRepo struct {
	cierres map[uint]*model.CierreTurno
	nextID  uint
}

func newStubCierreRepo() *stubCierreRepo {
	return &stubCierreRepo{cierres: make(map[uint]*model.CierreTurno), nextID: 1}
}

func (r *stubCierreRepo) Create(_ context.Context, c *model.CierreTurno) error {
	for _, existing := range r.cierres {
		if existing.TurnoID == c.TurnoID && existing.Fecha.Equal(c.Fecha) {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = r.nextID
	r.nextID++
	cloned := *c
	r.cierres[c.ID] = &cloned
	return nil
}

func (r *stubCierreRepo) FindByKey(_ context.Context, turnoID uint, fecha time.Time) (*model.CierreTurno, error) {
	for _, c := range r.cierres {
		if c.TurnoID == turnoID && c.Fecha.Equal(fecha) {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.CierreRepository = (*stubCierreRepo)(nil)

// ── SorteoRepository ──────────────────────────────────────────────────────────

type stubSorteoRepo struct {
	sorteos map[uint]*model.Sorteo
	nextID  uint
}

func newStubSorteoRepo() *stubSorteoRepo {
	return &stubSorteoRepo{sorteos: make(map[uint]*model.Sorteo), nextID: 1}
}

func (r *stubSorteoRepo) Create(_ context.Context, s *model.Sorteo) error {
	for _, existing := range r.sorteos {
		if existing.TurnoID == s.TurnoID && existing.Fecha.Equal(s.Fecha) {
			return gorm.ErrDuplicatedKey
		}
	}
	s.ID = r.nextID
	r.nextID++
	cloned := *s
	r.sorteos[s.ID] = &cloned
	return nil
}

func (r *stubSorteoRepo) FindByID(_ context.Context, id uint) (*model.Sorteo, error) {
	s, ok := r.sorteos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *s
	return &cloned, nil
}

func (r *stubSorteoRepo) FindByKey(_ context.Context, turnoID uint, fecha time.Time) (*model.Sorteo, error) {
	for _, s := range r.sorteos {
		if s.TurnoID == turnoID && s.Fecha.Equal(fecha) {
			cloned := *s
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSorteoRepo) FindAll(_ context.Context, fecha *time.Time) ([]model.Sorteo, error) {
	var out []model.Sorteo
	for _, s := range r.sorteos {
		if fecha != nil && !s.Fecha.Equal(*fecha) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

var _ repository.SorteoRepository = (*stubSorteoRepo)(nil)

// ── AlertaRepository ──────────────────────────────────────────────────────────

type stubAlertaRepo struct {
	alertas map[uint]*model.Alerta
	nextID  uint
}

func newStubAlertaRepo() *stubAlertaRepo {
	return &stubAlertaRepo{alertas: make(map[uint]*model.Alerta), nextID: 1}
}

func (r *stubAlertaRepo) Create(_ context.Context, a *model.Alerta) error {
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now()
	cloned := *a
	r.alertas[a.ID] = &cloned
	return nil
}

func (r *stubAlertaRepo) FindByIDForUsuario(_ context.Context, id, usuarioID uint) (*model.Alerta, error) {
	a, ok := r.alertas[id]
	if !ok || a.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *a
	return &cloned, nil
}

func (r *stubAlertaRepo) List(_ context.Context, usuarioID uint, estado string) ([]model.Alerta, error) {
	var out []model.Alerta
	for _, a := range r.alertas {
		if a.UsuarioID != usuarioID {
			continue
		}
		if estado != "" && a.Estado != estado {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAlertaRepo) Update(_ context.Context, a *model.Alerta) error {
	if _, ok := r.alertas[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *a
	r.alertas[a.ID] = &cloned
	return nil
}

func (r *stubAlertaRepo) Exists(_ context.Context, usuarioID, turnoID uint, fecha time.Time, tipo string) (bool, error) {
	for _, a := range r.alertas {
		if a.UsuarioID == usuarioID && a.TurnoID == turnoID && a.Fecha.Equal(fecha) && a.Tipo == tipo {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.AlertaRepository = (*stubAlertaRepo)(nil)

// ── ConfiguracionRepository ───────────────────────────────────────────────────

type stubConfiguracionRepo struct {
	configs map[string]*model.Configuracion
	nextID  uint
}

func newStubConfiguracionRepo() *stubConfiguracionRepo {
	return &stubConfiguracionRepo{configs: make(map[string]*model.Configuracion), nextID: 1}
}

func (r *stubConfiguracionRepo) Create(_ context.Context, c *model.Configuracion) error {
	if _, ok := r.configs[c.Clave]; ok {
		return gorm.ErrDuplicatedKey
	}
	c.ID = r.nextID
	r.nextID++
	cloned := *c
	r.configs[c.Clave] = &cloned
	return nil
}

func (r *stubConfiguracionRepo) FindByID(_ context.Context, id uint) (*model.Configuracion, error) {
	for _, c := range r.configs {
		if c.ID == id {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubConfiguracionRepo) FindByClave(_ context.Context, clave string) (*model.Configuracion, error) {
	c, ok := r.configs[clave]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubConfiguracionRepo) FindAll(_ context.Context) ([]model.Configuracion, error) {
	var out []model.Configuracion
	for _, c := range r.configs {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubConfiguracionRepo) Update(_ context.Context, c *model.Configuracion) error {
	cloned := *c
	r.configs[c.Clave] = &cloned
	return nil
}

func (r *stubConfiguracionRepo) Upsert(_ context.Context, c *model.Configuracion) error {
	if existing, ok := r.configs[c.Clave]; ok {
		c.ID = existing.ID
	} else {
		c.ID = r.nextID
		r.nextID++
	}
	cloned := *c
	r.configs[c.Clave] = &cloned
	return nil
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)

// ── LimpiezaRepository ────────────────────────────────────────────────────────
// Backed by fixed per-category row sets so deleted counts and dry-run
// counts can be compared against each other.

type stubLimpiezaRepo struct {
	detalles      []time.Time // fecha of the owning venta
	ventas        []time.Time
	alertas       []time.Time // resuelta_en
	auditoria     []time.Time // created_at
	restricciones []time.Time // fecha, only esta_restringido=false rows

	failVentas bool
}

func countBefore(rows []time.Time, cutoff time.Time) int64 {
	var n int64
	for _, t := range rows {
		if t.Before(cutoff) {
			n++
		}
	}
	return n
}

func deleteBefore(rows []time.Time, cutoff time.Time) ([]time.Time, int64) {
	var kept []time.Time
	var n int64
	for _, t := range rows {
		if t.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, t)
	}
	return kept, n
}

func (r *stubLimpiezaRepo) DeleteDetallesAntiguos(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	r.detalles, n = deleteBefore(r.detalles, cutoff)
	return n, nil
}

func (r *stubLimpiezaRepo) DeleteVentasAntiguas(_ context.Context, cutoff time.Time) (int64, error) {
	if r.failVentas {
		return 0, gorm.ErrInvalidTransaction
	}
	var n int64
	r.ventas, n = deleteBefore(r.ventas, cutoff)
	return n, nil
}

func (r *stubLimpiezaRepo) DeleteAlertasResueltas(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	r.alertas, n = deleteBefore(r.alertas, cutoff)
	return n, nil
}

func (r *stubLimpiezaRepo) DeleteAuditoriaAntigua(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	r.auditoria, n = deleteBefore(r.auditoria, cutoff)
	return n, nil
}

func (r *stubLimpiezaRepo) DeleteRestriccionesInactivas(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	r.restricciones, n = deleteBefore(r.restricciones, cutoff)
	return n, nil
}

func (r *stubLimpiezaRepo) CountDetallesAntiguos(_ context.Context, cutoff time.Time) (int64, error) {
	return countBefore(r.detalles, cutoff), nil
}

func (r *stubLimpiezaRepo) CountVentasAntiguas(_ context.Context, cutoff time.Time) (int64, error) {
	return countBefore(r.ventas, cutoff), nil
}

func (r *stubLimpiezaRepo) CountAlertasResueltas(_ context.Context, cutoff time.Time) (int64, error) {
	return countBefore(r.alertas, cutoff), nil
}

func (r *stubLimpiezaRepo) CountAuditoriaAntigua(_ context.Context, cutoff time.Time) (int64, error) {
	return countBefore(r.auditoria, cutoff), nil
}

func (r *stubLimpiezaRepo) CountRestriccionesInactivas(_ context.Context, cutoff time.Time) (int64, error) {
	return countBefore(r.restricciones, cutoff), nil
}

var _ repository.LimpiezaRepository = (*stubLimpiezaRepo)(nil)

// ── Shared helpers ────────────────────────────────────────────────────────────

func turnoActivo(repo *stubTurnoRepo, nombre string, horaCierre string) *model.Turno {
	t := &model.Turno{
		Nombre:        nombre,
		Categoria:     "diaria",
		Hora:          "10:00",
		HoraCierre:    horaCierre,
		TiempoAlerta:  10,
		TiempoBloqueo: 5,
		Estado:        "activo",
	}
	_ = repo.Create(context.Background(), t)
	return t
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(n int) *int { return &n }

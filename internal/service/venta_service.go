package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"
	"colochas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error)
	BuscarBoucher(ctx context.Context, numeroBoucher string) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, usuarioID, id uint) error
}

type ventaService struct {
	repo            repository.VentaRepository
	turnoRepo       repository.TurnoRepository
	restriccionRepo repository.RestriccionRepository
	auditoriaRepo   repository.AuditoriaRepository
	// now is swapped out in tests to pin the shift-timing clock.
	now func() time.Time
}

func NewVentaService(
	repo repository.VentaRepository,
	turnoRepo repository.TurnoRepository,
	restriccionRepo repository.RestriccionRepository,
	auditoriaRepo repository.AuditoriaRepository,
) VentaService {
	return &ventaService{
		repo:            repo,
		turnoRepo:       turnoRepo,
		restriccionRepo: restriccionRepo,
		auditoriaRepo:   auditoriaRepo,
		now:             time.Now,
	}
}

// lineaAgrupada is one distinct numero of the request after merging
// duplicate lines. A buyer may put money on the same numero twice in one
// ticket; the montos are summed and persisted as a single detalle.
type lineaAgrupada struct {
	numero int
	monto  decimal.Decimal
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// The single write path for sales. One database transaction covers the
// restriction-cap reads and the venta+detalles insert; the restriction
// rows are locked FOR UPDATE first, so two concurrent sales sharing a
// capped numero serialize and cannot jointly exceed the cap.

func (s *ventaService) Crear(ctx context.Context, usuarioID uint, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}

	lineas, total, err := agruparDetalles(req.Detalles)
	if err != nil {
		return nil, err
	}

	turno, err := s.turnoRepo.FindByID(ctx, req.TurnoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Turno"}
		}
		return nil, err
	}
	if !turno.Activo() {
		return nil, &InvalidStateError{Msg: fmt.Sprintf("El turno %s esta inactivo", turno.Nombre)}
	}

	// Shift timing only gates today's sales; recording a historical fecha
	// (back-office corrections) bypasses the clock entirely.
	if err := s.verificarHorario(turno, fecha); err != nil {
		return nil, err
	}

	numeros := make([]int, 0, len(lineas))
	for _, l := range lineas {
		numeros = append(numeros, l.numero)
	}

	var ventaID uint
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Lock first, then read committed totals under the lock.
		restricciones, err := s.restriccionRepo.FindForNumerosForUpdate(ctx, tx, turno.ID, fecha, numeros)
		if err != nil {
			return err
		}
		porNumero := make(map[int]*model.RestriccionNumero, len(restricciones))
		for i := range restricciones {
			porNumero[restricciones[i].Numero] = &restricciones[i]
		}

		var rechazados []NumeroRechazado
		for _, l := range lineas {
			r := porNumero[l.numero]
			if r == nil || !r.EstaRestringido {
				continue
			}
			rechazado, err := s.evaluarRestriccion(ctx, tx, turno.ID, fecha, l, r)
			if err != nil {
				return err
			}
			if rechazado != nil {
				rechazados = append(rechazados, *rechazado)
			}
		}
		if len(rechazados) > 0 {
			return &RestriccionNumeroError{Numeros: rechazados}
		}

		venta := model.Venta{
			TurnoID:       turno.ID,
			UsuarioID:     usuarioID,
			Fecha:         fecha,
			Total:         total,
			Observaciones: req.Observaciones,
		}
		for _, l := range lineas {
			venta.Detalles = append(venta.Detalles, model.DetalleVenta{Numero: l.numero, Monto: l.monto})
		}

		if err := s.crearConBoucher(ctx, tx, &venta, fecha); err != nil {
			return err
		}
		ventaID = venta.ID

		return s.auditar(ctx, tx, usuarioID, "crear_venta", venta.ID, map[string]interface{}{
			"turno_id": turno.ID,
			"fecha":    req.Fecha,
			"total":    total.String(),
			"numeros":  numeros,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	hydrated, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(hydrated), nil
}

// agruparDetalles validates every line and merges duplicate numeros.
// Returned lineas are sorted by numero for deterministic persistence.
func agruparDetalles(detalles []dto.DetalleVentaRequest) ([]lineaAgrupada, decimal.Decimal, error) {
	fields := make(map[string]string)
	montos := make(map[int]decimal.Decimal)
	total := decimal.Zero

	for i, d := range detalles {
		if d.Numero < 0 || d.Numero > 99 {
			fields[fmt.Sprintf("detalles[%d].numero", i)] = "debe estar entre 0 y 99"
			continue
		}
		if !d.Monto.IsPositive() {
			fields[fmt.Sprintf("detalles[%d].monto", i)] = "debe ser mayor a 0"
			continue
		}
		montos[d.Numero] = montos[d.Numero].Add(d.Monto)
		total = total.Add(d.Monto)
	}
	if len(fields) > 0 {
		return nil, decimal.Zero, &ValidationError{Msg: "Detalles de venta invalidos", Fields: fields}
	}

	lineas := make([]lineaAgrupada, 0, len(montos))
	for numero, monto := range montos {
		lineas = append(lineas, lineaAgrupada{numero: numero, monto: monto})
	}
	sort.Slice(lineas, func(i, j int) bool { return lineas[i].numero < lineas[j].numero })
	return lineas, total, nil
}

// verificarHorario rejects today's sales past horaCierre - tiempoBloqueo.
func (s *ventaService) verificarHorario(turno *model.Turno, fecha time.Time) error {
	now := s.now()
	if !soloFecha(now).Equal(soloFecha(fecha)) {
		return nil
	}
	cierre, err := time.Parse("15:04", turno.HoraCierre)
	if err != nil {
		return fmt.Errorf("hora de cierre invalida en turno %d: %w", turno.ID, err)
	}
	limite := time.Date(now.Year(), now.Month(), now.Day(),
		cierre.Hour(), cierre.Minute(), 0, 0, now.Location()).
		Add(-time.Duration(turno.TiempoBloqueo) * time.Minute)
	if !now.Before(limite) {
		return &ShiftClosedError{TurnoNombre: turno.Nombre, HoraLimite: limite.Format("15:04")}
	}
	return nil
}

// evaluarRestriccion checks one locked restriction row against the line's
// contribution plus the committed totals read inside the transaction.
func (s *ventaService) evaluarRestriccion(ctx context.Context, tx *gorm.DB, turnoID uint, fecha time.Time, l lineaAgrupada, r *model.RestriccionNumero) (*NumeroRechazado, error) {
	switch r.TipoRestriccion {
	case model.RestriccionCompleto:
		return &NumeroRechazado{
			Numero:  l.numero,
			Motivo:  MotivoBloqueado,
			Mensaje: fmt.Sprintf("El numero %d esta bloqueado para este turno y fecha", l.numero),
		}, nil

	case model.RestriccionMonto:
		if r.LimiteMonto == nil {
			return nil, fmt.Errorf("restriccion %d de tipo monto sin limite", r.ID)
		}
		acumulado, _, err := s.repo.SumDetalleNumero(ctx, tx, turnoID, fecha, l.numero)
		if err != nil {
			return nil, err
		}
		if acumulado.Add(l.monto).GreaterThan(*r.LimiteMonto) {
			return &NumeroRechazado{
				Numero: l.numero,
				Motivo: MotivoExcedeMonto,
				Mensaje: fmt.Sprintf("El numero %d excederia el limite de monto %s (acumulado %s)",
					l.numero, r.LimiteMonto.StringFixed(2), acumulado.StringFixed(2)),
			}, nil
		}

	case model.RestriccionCantidad:
		if r.LimiteCantidad == nil {
			return nil, fmt.Errorf("restriccion %d de tipo cantidad sin limite", r.ID)
		}
		_, cantidad, err := s.repo.SumDetalleNumero(ctx, tx, turnoID, fecha, l.numero)
		if err != nil {
			return nil, err
		}
		// The merged line counts as one persisted detalle.
		if cantidad+1 > int64(*r.LimiteCantidad) {
			return &NumeroRechazado{
				Numero:  l.numero,
				Motivo:  MotivoExcedeCantidad,
				Mensaje: fmt.Sprintf("El numero %d alcanzo el limite de %d ventas", l.numero, *r.LimiteCantidad),
			}, nil
		}
	}
	return nil, nil
}

const boucherMaxIntentos = 3

// crearConBoucher assigns a receipt number and inserts the venta,
// regenerating on the (astronomically rare) unique-constraint collision.
func (s *ventaService) crearConBoucher(ctx context.Context, tx *gorm.DB, venta *model.Venta, fecha time.Time) error {
	var err error
	for i := 0; i < boucherMaxIntentos; i++ {
		venta.NumeroBoucher = generarBoucher(fecha)
		err = s.repo.Create(ctx, tx, venta)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return fmt.Errorf("no se pudo generar un numero de boucher unico: %w", err)
}

func generarBoucher(fecha time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("B-%s-%s", fecha.Format("20060102"), suffix)
}

func (s *ventaService) auditar(ctx context.Context, tx *gorm.DB, usuarioID uint, accion string, registroID uint, detalles map[string]interface{}) error {
	if s.auditoriaRepo == nil {
		return nil
	}
	raw, _ := json.Marshal(detalles)
	det := string(raw)
	return s.auditoriaRepo.CreateTx(ctx, tx, &model.Auditoria{
		UsuarioID:  &usuarioID,
		Accion:     accion,
		Tabla:      "ventas",
		RegistroID: &registroID,
		Detalles:   &det,
	})
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Venta", Msg: fmt.Sprintf("Venta con ID %d no encontrada", id)}
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) BuscarBoucher(ctx context.Context, numeroBoucher string) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByBoucher(ctx, numeroBoucher)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Boucher", Msg: fmt.Sprintf("Boucher %s no encontrado", numeroBoucher)}
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Hard delete, cascading detalles. Caps are evaluated against committed
// sales at check time, so deleting a venta organically frees capacity for
// subsequent sales — no recomputation happens here.

func (s *ventaService) Eliminar(ctx context.Context, usuarioID, id uint) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entidad: "Venta", Msg: fmt.Sprintf("Venta con ID %d no encontrada", id)}
		}
		return err
	}
	if err := s.repo.Delete(ctx, venta.ID); err != nil {
		return err
	}
	if s.auditoriaRepo != nil {
		raw, _ := json.Marshal(map[string]interface{}{
			"numero_boucher": venta.NumeroBoucher,
			"total":          venta.Total.String(),
		})
		det := string(raw)
		_ = s.auditoriaRepo.Create(ctx, &model.Auditoria{
			UsuarioID:  &usuarioID,
			Accion:     "eliminar_venta",
			Tabla:      "ventas",
			RegistroID: &id,
			Detalles:   &det,
		})
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"
	"colochas/internal/repository"

	"gorm.io/gorm"
)

type RestriccionService interface {
	Crear(ctx context.Context, req dto.CrearRestriccionRequest) (*dto.CrearRestriccionResponse, error)
	CrearMultiples(ctx context.Context, req dto.CrearMultiplesRequest) (*dto.CrearMultiplesResponse, error)
	Listar(ctx context.Context, turnoID *uint, fecha *string) ([]dto.RestriccionResponse, error)
	Eliminar(ctx context.Context, id uint) error
	EliminarPorNumero(ctx context.Context, turnoID uint, numero int, fecha string) error
	EliminarMultiples(ctx context.Context, req dto.EliminarMultiplesRequest) (*dto.EliminarMultiplesResponse, error)
	Verificar(ctx context.Context, turnoID uint, numero int, fecha string) (*dto.VerificarResponse, error)
	VerificarMultiples(ctx context.Context, req dto.VerificarMultiplesRequest) (*dto.VerificarMultiplesResponse, error)
}

type restriccionService struct {
	repo      repository.RestriccionRepository
	turnoRepo repository.TurnoRepository
}

func NewRestriccionService(repo repository.RestriccionRepository, turnoRepo repository.TurnoRepository) RestriccionService {
	return &restriccionService{repo: repo, turnoRepo: turnoRepo}
}

// validarLimites fills the default tipo, checks limit coherence and
// drops limits that do not match the tipo.
func validarLimites(tipo string, m *model.RestriccionNumero) error {
	if tipo == "" {
		tipo = model.RestriccionCompleto
	}
	if !model.TipoRestriccionValido(tipo) {
		return &ValidationError{Msg: fmt.Sprintf("Tipo de restriccion invalido: %s", tipo)}
	}
	switch tipo {
	case model.RestriccionMonto:
		if m.LimiteMonto == nil || !m.LimiteMonto.IsPositive() {
			return &ValidationError{Msg: "La restriccion de tipo monto requiere limite_monto mayor a 0"}
		}
		m.LimiteCantidad = nil
	case model.RestriccionCantidad:
		if m.LimiteCantidad == nil || *m.LimiteCantidad <= 0 {
			return &ValidationError{Msg: "La restriccion de tipo cantidad requiere limite_cantidad mayor a 0"}
		}
		m.LimiteMonto = nil
	default:
		m.LimiteMonto = nil
		m.LimiteCantidad = nil
	}
	m.TipoRestriccion = tipo
	return nil
}

func (s *restriccionService) validarTurno(ctx context.Context, turnoID uint) (*model.Turno, error) {
	turno, err := s.turnoRepo.FindByID(ctx, turnoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Turno"}
		}
		return nil, err
	}
	return turno, nil
}

// validarTurnoActivo is the create-path variant: an inactive turno is
// reported the same as a missing one.
func (s *restriccionService) validarTurnoActivo(ctx context.Context, turnoID uint) (*model.Turno, error) {
	turno, err := s.validarTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}
	if !turno.Activo() {
		return nil, &NotFoundError{Entidad: "Turno", Msg: "Turno no encontrado o inactivo"}
	}
	return turno, nil
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Idempotent: repeating the same (turno, numero, fecha) returns the
// existing row instead of failing on the unique index.

func (s *restriccionService) Crear(ctx context.Context, req dto.CrearRestriccionRequest) (*dto.CrearRestriccionResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.validarTurnoActivo(ctx, req.TurnoID); err != nil {
		return nil, err
	}

	m := model.RestriccionNumero{
		TurnoID:         req.TurnoID,
		Numero:          req.Numero,
		Fecha:           fecha,
		EstaRestringido: true,
		LimiteMonto:     req.LimiteMonto,
		LimiteCantidad:  req.LimiteCantidad,
	}
	if err := validarLimites(req.TipoRestriccion, &m); err != nil {
		return nil, err
	}

	existente, err := s.repo.FindByKey(ctx, req.TurnoID, req.Numero, fecha)
	if err == nil {
		return &dto.CrearRestriccionResponse{
			Mensaje:     fmt.Sprintf("El numero %d ya estaba restringido para esta fecha y turno", req.Numero),
			YaExistia:   true,
			Restriccion: restriccionToResponse(existente),
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, &m); err != nil {
		// Lost the race against a concurrent identical create.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existente, ferr := s.repo.FindByKey(ctx, req.TurnoID, req.Numero, fecha)
			if ferr != nil {
				return nil, err
			}
			return &dto.CrearRestriccionResponse{
				Mensaje:     fmt.Sprintf("El numero %d ya estaba restringido para esta fecha y turno", req.Numero),
				YaExistia:   true,
				Restriccion: restriccionToResponse(existente),
			}, nil
		}
		return nil, err
	}
	return &dto.CrearRestriccionResponse{
		Mensaje:     fmt.Sprintf("Numero %d restringido correctamente", req.Numero),
		YaExistia:   false,
		Restriccion: restriccionToResponse(&m),
	}, nil
}

// ── CrearMultiples ────────────────────────────────────────────────────────────
// Best effort: each numero is created independently; existing rows are
// reported apart from fresh ones and never abort the batch.

func (s *restriccionService) CrearMultiples(ctx context.Context, req dto.CrearMultiplesRequest) (*dto.CrearMultiplesResponse, error) {
	if len(req.Numeros) == 0 && len(req.NumerosConRestricciones) == 0 {
		return nil, &ValidationError{Msg: "Debe indicar numeros o numeros_con_restricciones"}
	}
	if len(req.Numeros) > 0 && len(req.NumerosConRestricciones) > 0 {
		return nil, &ValidationError{Msg: "Indique numeros o numeros_con_restricciones, no ambos"}
	}

	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.validarTurnoActivo(ctx, req.TurnoID); err != nil {
		return nil, err
	}

	// Normalize both request shapes into one list, dropping duplicates.
	entradas := req.NumerosConRestricciones
	if len(entradas) == 0 {
		for _, n := range req.Numeros {
			entradas = append(entradas, dto.NumeroConRestriccion{
				Numero:          n,
				TipoRestriccion: req.TipoRestriccion,
				LimiteMonto:     req.LimiteMonto,
				LimiteCantidad:  req.LimiteCantidad,
			})
		}
	}
	// Every entrada is validated before touching the datastore, so a bad
	// item rejects the batch whole instead of leaving it half created.
	vistos := make(map[int]bool, len(entradas))
	modelos := make([]model.RestriccionNumero, 0, len(entradas))
	for _, e := range entradas {
		if vistos[e.Numero] {
			continue
		}
		vistos[e.Numero] = true

		m := model.RestriccionNumero{
			TurnoID:         req.TurnoID,
			Numero:          e.Numero,
			Fecha:           fecha,
			EstaRestringido: true,
			LimiteMonto:     e.LimiteMonto,
			LimiteCantidad:  e.LimiteCantidad,
		}
		if err := validarLimites(e.TipoRestriccion, &m); err != nil {
			return nil, err
		}
		modelos = append(modelos, m)
	}

	// From here on a failing numero never aborts the rest of the batch.
	resp := &dto.CrearMultiplesResponse{}
	for i := range modelos {
		m := &modelos[i]

		existente, err := s.repo.FindByKey(ctx, req.TurnoID, m.Numero, fecha)
		if err == nil {
			resp.Existentes = append(resp.Existentes, restriccionToResponse(existente))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err := s.repo.Create(ctx, m); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if existente, ferr := s.repo.FindByKey(ctx, req.TurnoID, m.Numero, fecha); ferr == nil {
					resp.Existentes = append(resp.Existentes, restriccionToResponse(existente))
				}
			}
			continue
		}
		resp.Creadas = append(resp.Creadas, restriccionToResponse(m))
	}

	resp.TotalCreadas = len(resp.Creadas)
	resp.TotalExistentes = len(resp.Existentes)
	resp.Total = resp.TotalCreadas + resp.TotalExistentes
	resp.Mensaje = fmt.Sprintf("%d restricciones creadas, %d ya existian", resp.TotalCreadas, resp.TotalExistentes)
	return resp, nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *restriccionService) Listar(ctx context.Context, turnoID *uint, fecha *string) ([]dto.RestriccionResponse, error) {
	var f *time.Time
	if fecha != nil && *fecha != "" {
		parsed, err := parseFecha(*fecha)
		if err != nil {
			return nil, err
		}
		f = &parsed
	}
	rows, err := s.repo.FindAll(ctx, turnoID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestriccionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, restriccionToResponse(&rows[i]))
	}
	return out, nil
}

func (s *restriccionService) Verificar(ctx context.Context, turnoID uint, numero int, fecha string) (*dto.VerificarResponse, error) {
	if numero < 0 || numero > 99 {
		return nil, &ValidationError{Msg: "El numero debe estar entre 0 y 99"}
	}
	f, err := parseFecha(fecha)
	if err != nil {
		return nil, err
	}
	turno, err := s.validarTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}

	resp := &dto.VerificarResponse{
		Numero:      numero,
		TurnoID:     turnoID,
		TurnoNombre: turno.Nombre,
		Fecha:       fecha,
	}
	r, err := s.repo.FindByKey(ctx, turnoID, numero, f)
	switch {
	case err == nil && r.EstaRestringido:
		resp.EstaRestringido = true
		resp.Mensaje = fmt.Sprintf("El numero %d esta restringido (%s)", numero, r.TipoRestriccion)
	case err == nil, errors.Is(err, gorm.ErrRecordNotFound):
		resp.Mensaje = fmt.Sprintf("El numero %d esta disponible", numero)
	default:
		return nil, err
	}
	return resp, nil
}

func (s *restriccionService) VerificarMultiples(ctx context.Context, req dto.VerificarMultiplesRequest) (*dto.VerificarMultiplesResponse, error) {
	f, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.validarTurno(ctx, req.TurnoID); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, &req.TurnoID, &f)
	if err != nil {
		return nil, err
	}
	restringidos := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r.EstaRestringido {
			restringidos[r.Numero] = true
		}
	}

	resp := &dto.VerificarMultiplesResponse{Total: len(req.Numeros)}
	for _, n := range req.Numeros {
		r := restringidos[n]
		resp.Resultados = append(resp.Resultados, dto.VerificarResultado{Numero: n, EstaRestringido: r})
		if r {
			resp.NumerosRestringidos = append(resp.NumerosRestringidos, n)
		} else {
			resp.NumerosDisponibles = append(resp.NumerosDisponibles, n)
		}
	}
	resp.Restringidos = len(resp.NumerosRestringidos)
	resp.Disponibles = len(resp.NumerosDisponibles)
	return resp, nil
}

// ── Eliminaciones ─────────────────────────────────────────────────────────────

func (s *restriccionService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entidad: "Restriccion"}
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *restriccionService) EliminarPorNumero(ctx context.Context, turnoID uint, numero int, fecha string) error {
	f, err := parseFecha(fecha)
	if err != nil {
		return err
	}
	r, err := s.repo.FindByKey(ctx, turnoID, numero, f)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entidad: "Restriccion",
				Msg: fmt.Sprintf("El numero %d no tiene restriccion para esta fecha y turno", numero)}
		}
		return err
	}
	return s.repo.Delete(ctx, r.ID)
}

// EliminarMultiples removes what exists and reports the rest, never
// failing the batch over absent rows.
func (s *restriccionService) EliminarMultiples(ctx context.Context, req dto.EliminarMultiplesRequest) (*dto.EliminarMultiplesResponse, error) {
	f, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.validarTurno(ctx, req.TurnoID); err != nil {
		return nil, err
	}

	resp := &dto.EliminarMultiplesResponse{}
	vistos := make(map[int]bool, len(req.Numeros))
	for _, n := range req.Numeros {
		if vistos[n] {
			continue
		}
		vistos[n] = true

		r, err := s.repo.FindByKey(ctx, req.TurnoID, n, f)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NumerosNoEncontrados = append(resp.NumerosNoEncontrados, n)
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := s.repo.Delete(ctx, r.ID); err != nil {
			return nil, err
		}
		resp.NumerosEliminados = append(resp.NumerosEliminados, n)
	}
	resp.TotalEliminados = len(resp.NumerosEliminados)
	resp.TotalNoEncontrados = len(resp.NumerosNoEncontrados)
	resp.Mensaje = fmt.Sprintf("%d restricciones eliminadas, %d no encontradas", resp.TotalEliminados, resp.TotalNoEncontrados)
	return resp, nil
}

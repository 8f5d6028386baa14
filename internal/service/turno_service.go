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

type TurnoService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearTurnoRequest) (*dto.TurnoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.TurnoResponse, error)
	Listar(ctx context.Context, categoria string, includeInactivos bool) ([]dto.TurnoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarTurnoRequest) (*dto.TurnoResponse, error)
	Eliminar(ctx context.Context, id uint) error
	VerificarAlertaCierre(ctx context.Context, id uint) (*dto.AlertaCierreResponse, error)
}

type turnoService struct {
	repo repository.TurnoRepository
	now  func() time.Time
}

func NewTurnoService(repo repository.TurnoRepository) TurnoService {
	return &turnoService{repo: repo, now: time.Now}
}

func (s *turnoService) Crear(ctx context.Context, usuarioID uint, req dto.CrearTurnoRequest) (*dto.TurnoResponse, error) {
	t := model.Turno{
		Nombre:        req.Nombre,
		Categoria:     req.Categoria,
		Hora:          req.Hora,
		HoraCierre:    req.HoraCierre,
		TiempoAlerta:  10,
		TiempoBloqueo: 5,
		Estado:        "activo",
		CreatedByID:   &usuarioID,
	}
	if req.TiempoAlerta != nil {
		t.TiempoAlerta = *req.TiempoAlerta
	}
	if req.TiempoBloqueo != nil {
		t.TiempoBloqueo = *req.TiempoBloqueo
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Msg: fmt.Sprintf("Ya existe un turno con nombre %s", req.Nombre)}
		}
		return nil, err
	}
	return turnoToResponse(&t), nil
}

func (s *turnoService) ObtenerPorID(ctx context.Context, id uint) (*dto.TurnoResponse, error) {
	t, err := s.findTurno(ctx, id)
	if err != nil {
		return nil, err
	}
	return turnoToResponse(t), nil
}

func (s *turnoService) Listar(ctx context.Context, categoria string, includeInactivos bool) ([]dto.TurnoResponse, error) {
	turnos, err := s.repo.FindAll(ctx, categoria, includeInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TurnoResponse, 0, len(turnos))
	for i := range turnos {
		out = append(out, *turnoToResponse(&turnos[i]))
	}
	return out, nil
}

func (s *turnoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarTurnoRequest) (*dto.TurnoResponse, error) {
	t, err := s.findTurno(ctx, id)
	if err != nil {
		return nil, err
	}
	// Standard turnos keep their well-known names.
	if req.Nombre != nil && *req.Nombre != t.Nombre && t.EsEstandar() {
		return nil, &InvalidStateError{Msg: fmt.Sprintf("El turno estandar %s no puede renombrarse", t.Nombre)}
	}
	if req.Nombre != nil {
		t.Nombre = *req.Nombre
	}
	if req.Categoria != nil {
		t.Categoria = *req.Categoria
	}
	if req.Hora != nil {
		t.Hora = *req.Hora
	}
	if req.HoraCierre != nil {
		t.HoraCierre = *req.HoraCierre
	}
	if req.TiempoAlerta != nil {
		t.TiempoAlerta = *req.TiempoAlerta
	}
	if req.TiempoBloqueo != nil {
		t.TiempoBloqueo = *req.TiempoBloqueo
	}
	if req.Estado != nil {
		t.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Msg: fmt.Sprintf("Ya existe un turno con nombre %s", t.Nombre)}
		}
		return nil, err
	}
	return turnoToResponse(t), nil
}

// Eliminar deactivates instead of deleting when the turno is standard or
// has history; a hard delete would orphan ventas and restricciones.
func (s *turnoService) Eliminar(ctx context.Context, id uint) error {
	t, err := s.findTurno(ctx, id)
	if err != nil {
		return err
	}
	ventas, err := s.repo.CountVentas(ctx, id)
	if err != nil {
		return err
	}
	restricciones, err := s.repo.CountRestricciones(ctx, id)
	if err != nil {
		return err
	}
	if t.EsEstandar() || ventas > 0 || restricciones > 0 {
		t.Estado = "inactivo"
		return s.repo.Update(ctx, t)
	}
	return s.repo.Delete(ctx, id)
}

// VerificarAlertaCierre reports whether the turno is inside its alert or
// block window at the current wall-clock time.
func (s *turnoService) VerificarAlertaCierre(ctx context.Context, id uint) (*dto.AlertaCierreResponse, error) {
	t, err := s.findTurno(ctx, id)
	if err != nil {
		return nil, err
	}
	cierre, err := time.Parse("15:04", t.HoraCierre)
	if err != nil {
		return nil, fmt.Errorf("hora de cierre invalida en turno %d: %w", t.ID, err)
	}
	now := s.now()
	cierreHoy := time.Date(now.Year(), now.Month(), now.Day(),
		cierre.Hour(), cierre.Minute(), 0, 0, now.Location())
	restantes := int(cierreHoy.Sub(now).Minutes())

	resp := &dto.AlertaCierreResponse{
		TurnoID:          t.ID,
		Nombre:           t.Nombre,
		HoraCierre:       t.HoraCierre,
		MinutosRestantes: restantes,
	}
	if restantes <= t.TiempoBloqueo {
		resp.Bloqueado = true
	}
	if restantes <= t.TiempoAlerta && restantes > 0 {
		resp.EnAlerta = true
	}
	return resp, nil
}

func (s *turnoService) findTurno(ctx context.Context, id uint) (*model.Turno, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Turno"}
		}
		return nil, err
	}
	return t, nil
}

func turnoToResponse(t *model.Turno) *dto.TurnoResponse {
	return &dto.TurnoResponse{
		ID:            t.ID,
		Nombre:        t.Nombre,
		Categoria:     t.Categoria,
		Hora:          t.Hora,
		HoraCierre:    t.HoraCierre,
		TiempoAlerta:  t.TiempoAlerta,
		TiempoBloqueo: t.TiempoBloqueo,
		Estado:        t.Estado,
		CreatedBy:     usuarioToResumen(t.CreatedBy),
	}
}

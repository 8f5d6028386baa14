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

type SorteoService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearSorteoRequest) (*dto.SorteoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.SorteoResponse, error)
	Listar(ctx context.Context, fecha *string) ([]dto.SorteoResponse, error)
	ObtenerPorTurnoFecha(ctx context.Context, turnoID uint, fecha string) (*dto.SorteoResponse, error)
}

type sorteoService struct {
	repo      repository.SorteoRepository
	turnoRepo repository.TurnoRepository
	now       func() time.Time
}

func NewSorteoService(repo repository.SorteoRepository, turnoRepo repository.TurnoRepository) SorteoService {
	return &sorteoService{repo: repo, turnoRepo: turnoRepo, now: time.Now}
}

func (s *sorteoService) Crear(ctx context.Context, usuarioID uint, req dto.CrearSorteoRequest) (*dto.SorteoResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if req.MontoPremio != nil && req.MontoPremio.IsNegative() {
		return nil, &ValidationError{Msg: "El monto del premio no puede ser negativo"}
	}
	if _, err := s.turnoRepo.FindByID(ctx, req.TurnoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Turno"}
		}
		return nil, err
	}

	m := model.Sorteo{
		TurnoID:       req.TurnoID,
		Fecha:         fecha,
		NumeroGanador: req.NumeroGanador,
		MontoPremio:   req.MontoPremio,
		Descripcion:   req.Descripcion,
		RealizadoPor:  usuarioID,
		RealizadoEn:   s.now(),
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Msg: fmt.Sprintf("Ya existe un sorteo para este turno en la fecha %s", req.Fecha)}
		}
		return nil, err
	}
	full, err := s.repo.FindByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return sorteoToResponse(full), nil
}

func (s *sorteoService) ObtenerPorID(ctx context.Context, id uint) (*dto.SorteoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Sorteo"}
		}
		return nil, err
	}
	return sorteoToResponse(m), nil
}

func (s *sorteoService) Listar(ctx context.Context, fecha *string) ([]dto.SorteoResponse, error) {
	var f *time.Time
	if fecha != nil && *fecha != "" {
		parsed, err := parseFecha(*fecha)
		if err != nil {
			return nil, err
		}
		f = &parsed
	}
	rows, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SorteoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *sorteoToResponse(&rows[i]))
	}
	return out, nil
}

func (s *sorteoService) ObtenerPorTurnoFecha(ctx context.Context, turnoID uint, fecha string) (*dto.SorteoResponse, error) {
	f, err := parseFecha(fecha)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.FindByKey(ctx, turnoID, f)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Sorteo",
				Msg: fmt.Sprintf("No hay sorteo registrado para el turno %d en %s", turnoID, fecha)}
		}
		return nil, err
	}
	return sorteoToResponse(m), nil
}

func sorteoToResponse(m *model.Sorteo) *dto.SorteoResponse {
	return &dto.SorteoResponse{
		ID:            m.ID,
		TurnoID:       m.TurnoID,
		Fecha:         m.Fecha.Format(fechaLayout),
		NumeroGanador: m.NumeroGanador,
		MontoPremio:   m.MontoPremio,
		Descripcion:   m.Descripcion,
		Turno:         turnoToResumen(m.Turno),
		RealizadoPor:  usuarioToResumen(m.Usuario),
		RealizadoEn:   m.RealizadoEn.Format(time.RFC3339),
	}
}

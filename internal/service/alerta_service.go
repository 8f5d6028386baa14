package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"
	"colochas/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const AlertaTipoCierre = "cierre_turno"

type AlertaService interface {
	Listar(ctx context.Context, usuarioID uint, estado string) ([]dto.AlertaResponse, error)
	Marcar(ctx context.Context, usuarioID, id uint, req dto.MarcarAlertaRequest) (*dto.AlertaResponse, error)
	// GenerarAlertasCierre raises one alerta per vendedor activo for every
	// turno inside its alert window. Invoked by the cron ticker.
	GenerarAlertasCierre(ctx context.Context) (int, error)
}

type alertaService struct {
	repo      repository.AlertaRepository
	turnoRepo repository.TurnoRepository
	ventaRepo repository.VentaRepository
	now       func() time.Time
}

func NewAlertaService(repo repository.AlertaRepository, turnoRepo repository.TurnoRepository, ventaRepo repository.VentaRepository) AlertaService {
	return &alertaService{repo: repo, turnoRepo: turnoRepo, ventaRepo: ventaRepo, now: time.Now}
}

func (s *alertaService) Listar(ctx context.Context, usuarioID uint, estado string) ([]dto.AlertaResponse, error) {
	if estado != "" && estado != model.AlertaActiva && estado != model.AlertaVista && estado != model.AlertaResuelta {
		return nil, &ValidationError{Msg: fmt.Sprintf("Estado de alerta invalido: %s", estado)}
	}
	rows, err := s.repo.List(ctx, usuarioID, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *alertaToResponse(&rows[i]))
	}
	return out, nil
}

func (s *alertaService) Marcar(ctx context.Context, usuarioID, id uint, req dto.MarcarAlertaRequest) (*dto.AlertaResponse, error) {
	a, err := s.repo.FindByIDForUsuario(ctx, id, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Alerta"}
		}
		return nil, err
	}

	now := s.now()
	switch req.Accion {
	case "vista":
		if a.Estado == model.AlertaResuelta {
			return nil, &InvalidStateError{Msg: "Una alerta resuelta no puede volver a vista"}
		}
		a.Estado = model.AlertaVista
		a.VistaEn = &now
	case "resuelta":
		a.Estado = model.AlertaResuelta
		a.ResueltaEn = &now
		if a.VistaEn == nil {
			a.VistaEn = &now
		}
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return alertaToResponse(a), nil
}

// GenerarAlertasCierre notifies sellers with open activity in a turno
// whose alert window has started. The Exists check keeps a user from
// receiving the same alerta twice per turno+fecha.
func (s *alertaService) GenerarAlertasCierre(ctx context.Context) (int, error) {
	turnos, err := s.turnoRepo.ListActivos(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	hoy := soloFecha(now)
	creadas := 0

	for i := range turnos {
		t := &turnos[i]
		cierre, err := time.Parse("15:04", t.HoraCierre)
		if err != nil {
			log.Warn().Uint("turno_id", t.ID).Str("hora_cierre", t.HoraCierre).Msg("hora de cierre invalida, se omite")
			continue
		}
		cierreHoy := time.Date(now.Year(), now.Month(), now.Day(),
			cierre.Hour(), cierre.Minute(), 0, 0, now.Location())
		restantes := cierreHoy.Sub(now)
		if restantes <= 0 || restantes > time.Duration(t.TiempoAlerta)*time.Minute {
			continue
		}

		vendedores, err := s.ventaRepo.DistinctVendedores(ctx, t.ID, hoy)
		if err != nil {
			return creadas, err
		}
		for _, usuarioID := range vendedores {
			existe, err := s.repo.Exists(ctx, usuarioID, t.ID, hoy, AlertaTipoCierre)
			if err != nil {
				return creadas, err
			}
			if existe {
				continue
			}
			a := model.Alerta{
				UsuarioID: usuarioID,
				TurnoID:   t.ID,
				Fecha:     hoy,
				Tipo:      AlertaTipoCierre,
				Mensaje:   fmt.Sprintf("El turno %s cierra a las %s", t.Nombre, t.HoraCierre),
				Estado:    model.AlertaActiva,
			}
			if err := s.repo.Create(ctx, &a); err != nil {
				return creadas, err
			}
			creadas++
		}
	}
	return creadas, nil
}

func alertaToResponse(a *model.Alerta) *dto.AlertaResponse {
	return &dto.AlertaResponse{
		ID:        a.ID,
		TurnoID:   a.TurnoID,
		Fecha:     a.Fecha.Format(fechaLayout),
		Tipo:      a.Tipo,
		Mensaje:   a.Mensaje,
		Estado:    a.Estado,
		Turno:     turnoToResumen(a.Turno),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

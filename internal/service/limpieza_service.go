package service

import (
	"context"
	"errors"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"
	"colochas/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type LimpiezaService interface {
	// LimpiarDatosAntiguos deletes rows older than diasRetencion across
	// every retained category. A failing category is logged and skipped;
	// the rest still run.
	LimpiarDatosAntiguos(ctx context.Context, usuarioID *uint, diasRetencion int) (*dto.LimpiezaResultado, error)
	// ObtenerEstadisticas is the dry run: the counts a cleanup with the
	// same retention would delete, without touching anything.
	ObtenerEstadisticas(ctx context.Context, diasRetencion int) (*dto.LimpiezaEstadisticas, error)
	UltimaEjecucion(ctx context.Context) (*time.Time, error)
}

type limpiezaService struct {
	repo       repository.LimpiezaRepository
	configRepo repository.ConfiguracionRepository
	now        func() time.Time
}

func NewLimpiezaService(repo repository.LimpiezaRepository, configRepo repository.ConfiguracionRepository) LimpiezaService {
	return &limpiezaService{repo: repo, configRepo: configRepo, now: time.Now}
}

func (s *limpiezaService) cutoff(diasRetencion int) (time.Time, error) {
	if diasRetencion < 1 {
		return time.Time{}, &ValidationError{Msg: "Los dias de retencion deben ser al menos 1"}
	}
	return soloFecha(s.now().AddDate(0, 0, -diasRetencion)), nil
}

func (s *limpiezaService) LimpiarDatosAntiguos(ctx context.Context, usuarioID *uint, diasRetencion int) (*dto.LimpiezaResultado, error) {
	cutoff, err := s.cutoff(diasRetencion)
	if err != nil {
		return nil, err
	}

	res := &dto.LimpiezaResultado{}
	run := func(categoria string, dest *int64, del func(context.Context, time.Time) (int64, error)) {
		n, err := del(ctx, cutoff)
		if err != nil {
			log.Error().Err(err).Str("categoria", categoria).Msg("fallo limpieza de categoria")
			return
		}
		*dest = n
	}

	// Detalles before ventas: the child rows reference the parent.
	run("detalles", &res.DetallesEliminados, s.repo.DeleteDetallesAntiguos)
	run("ventas", &res.VentasEliminadas, s.repo.DeleteVentasAntiguas)
	run("alertas", &res.AlertasEliminadas, s.repo.DeleteAlertasResueltas)
	run("auditoria", &res.AuditoriaEliminada, s.repo.DeleteAuditoriaAntigua)
	run("restricciones", &res.RestriccionesEliminadas, s.repo.DeleteRestriccionesInactivas)

	if err := s.registrarEjecucion(ctx, usuarioID); err != nil {
		log.Error().Err(err).Msg("no se pudo registrar la ultima ejecucion de limpieza")
	}

	log.Info().
		Int64("ventas", res.VentasEliminadas).
		Int64("detalles", res.DetallesEliminados).
		Int64("alertas", res.AlertasEliminadas).
		Int64("auditoria", res.AuditoriaEliminada).
		Int64("restricciones", res.RestriccionesEliminadas).
		Time("cutoff", cutoff).
		Msg("limpieza de datos completada")
	return res, nil
}

func (s *limpiezaService) ObtenerEstadisticas(ctx context.Context, diasRetencion int) (*dto.LimpiezaEstadisticas, error) {
	cutoff, err := s.cutoff(diasRetencion)
	if err != nil {
		return nil, err
	}
	stats := &dto.LimpiezaEstadisticas{}
	if stats.DetallesAConsiderar, err = s.repo.CountDetallesAntiguos(ctx, cutoff); err != nil {
		return nil, err
	}
	if stats.VentasAConsiderar, err = s.repo.CountVentasAntiguas(ctx, cutoff); err != nil {
		return nil, err
	}
	if stats.AlertasAConsiderar, err = s.repo.CountAlertasResueltas(ctx, cutoff); err != nil {
		return nil, err
	}
	if stats.AuditoriaAConsiderar, err = s.repo.CountAuditoriaAntigua(ctx, cutoff); err != nil {
		return nil, err
	}
	if stats.RestriccionesAConsiderar, err = s.repo.CountRestriccionesInactivas(ctx, cutoff); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *limpiezaService) registrarEjecucion(ctx context.Context, usuarioID *uint) error {
	return s.configRepo.Upsert(ctx, &model.Configuracion{
		Clave:     model.ConfigLimpiezaUltimaEjecucion,
		Valor:     s.now().Format(time.RFC3339),
		Tipo:      "date",
		Estado:    "activo",
		UpdatedBy: usuarioID,
	})
}

// UltimaEjecucion returns nil when no cleanup has run yet.
func (s *limpiezaService) UltimaEjecucion(ctx context.Context) (*time.Time, error) {
	c, err := s.configRepo.FindByClave(ctx, model.ConfigLimpiezaUltimaEjecucion)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, c.Valor)
	if err != nil {
		log.Warn().Str("valor", c.Valor).Msg("valor de limpieza_ultima_ejecucion ilegible")
		return nil, nil
	}
	return &t, nil
}

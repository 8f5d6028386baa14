package worker

// limpieza_cron.go
// Background goroutine for automatic data retention. Checks daily whether
// the configured interval has elapsed since the last cleanup (persisted in
// configuraciones, so restarts and multiple instances agree) and runs the
// cleaner when due.

import (
	"context"
	"time"

	"colochas/internal/service"

	"github.com/rs/zerolog/log"
)

const limpiezaTickInterval = 24 * time.Hour

// LimpiezaCronConfig holds the retention parameters for the cron.
type LimpiezaCronConfig struct {
	DiasRetencion int // rows older than this are purged
	IntervaloDias int // days between automatic runs
}

// StartLimpiezaCron launches the retention goroutine. An initial check
// runs shortly after startup so a long-stopped instance catches up without
// waiting a full day.
func StartLimpiezaCron(ctx context.Context, limpieza service.LimpiezaService, cfg LimpiezaCronConfig) {
	go func() {
		ticker := time.NewTicker(limpiezaTickInterval)
		defer ticker.Stop()

		log.Info().
			Int("dias_retencion", cfg.DiasRetencion).
			Int("intervalo_dias", cfg.IntervaloDias).
			Msg("limpieza_cron: started")

		startup := time.NewTimer(5 * time.Minute)
		defer startup.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("limpieza_cron: shutting down")
				return
			case <-startup.C:
				runLimpiezaIfDue(ctx, limpieza, cfg)
			case <-ticker.C:
				runLimpiezaIfDue(ctx, limpieza, cfg)
			}
		}
	}()
}

func runLimpiezaIfDue(ctx context.Context, limpieza service.LimpiezaService, cfg LimpiezaCronConfig) {
	ultima, err := limpieza.UltimaEjecucion(ctx)
	if err != nil {
		log.Error().Err(err).Msg("limpieza_cron: failed to read last run")
		return
	}
	if ultima != nil && time.Since(*ultima) < time.Duration(cfg.IntervaloDias)*24*time.Hour {
		return
	}

	res, err := limpieza.LimpiarDatosAntiguos(ctx, nil, cfg.DiasRetencion)
	if err != nil {
		log.Error().Err(err).Msg("limpieza_cron: cleanup failed")
		return
	}
	log.Info().
		Int64("ventas", res.VentasEliminadas).
		Int64("detalles", res.DetallesEliminados).
		Int64("alertas", res.AlertasEliminadas).
		Int64("auditoria", res.AuditoriaEliminada).
		Int64("restricciones", res.RestriccionesEliminadas).
		Msg("limpieza_cron: automatic cleanup completed")
}

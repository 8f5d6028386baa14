package worker

// alerta_cron.go
// Background goroutine that ticks every minute and raises closing alerts
// for turnos inside their alert window. Idempotency lives in the service
// (one alerta per user+turno+fecha), so overlapping ticks are harmless.

import (
	"context"
	"time"

	"colochas/internal/service"

	"github.com/rs/zerolog/log"
)

const alertaTickInterval = time.Minute

// StartAlertaCron launches the closing-alert goroutine. It respects the
// context for graceful shutdown.
func StartAlertaCron(ctx context.Context, alertas service.AlertaService) {
	go func() {
		ticker := time.NewTicker(alertaTickInterval)
		defer ticker.Stop()

		log.Info().Msg("alerta_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alerta_cron: shutting down")
				return
			case <-ticker.C:
				creadas, err := alertas.GenerarAlertasCierre(ctx)
				if err != nil {
					log.Error().Err(err).Msg("alerta_cron: failed to generate alerts")
					continue
				}
				if creadas > 0 {
					log.Info().Int("creadas", creadas).Msg("alerta_cron: closing alerts generated")
				}
			}
		}
	}()
}

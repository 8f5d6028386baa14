package worker

// reporte_worker.go
// Processes closure-report jobs from QueueReportes: renders the 0-99
// matrix PDF for the closed turno+fecha and chains an email job so the
// report reaches the back office without blocking the closing request.

import (
	"context"
	"encoding/json"
	"fmt"

	"colochas/internal/infra"
	"colochas/internal/service"

	"github.com/rs/zerolog/log"
)

// ReporteCierreJobPayload identifies the closure to report on.
type ReporteCierreJobPayload struct {
	TurnoID uint   `json:"turno_id"`
	Fecha   string `json:"fecha"`
}

// ReporteCierreWorker renders closure PDFs and enqueues their delivery.
type ReporteCierreWorker struct {
	cierres      service.CierreService
	dispatcher   *Dispatcher
	storagePath  string
	reportesPara string
}

func NewReporteCierreWorker(cierres service.CierreService, dispatcher *Dispatcher, storagePath, reportesPara string) *ReporteCierreWorker {
	return &ReporteCierreWorker{
		cierres:      cierres,
		dispatcher:   dispatcher,
		storagePath:  storagePath,
		reportesPara: reportesPara,
	}
}

func (w *ReporteCierreWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReporteCierreJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}

	reporte, err := w.cierres.ObtenerReporte(ctx, payload.TurnoID, payload.Fecha)
	if err != nil {
		log.Error().Err(err).
			Uint("turno_id", payload.TurnoID).
			Str("fecha", payload.Fecha).
			Msg("reporte_worker: failed to build report")
		return
	}

	pdfPath, err := infra.GenerateReporteCierrePDF(reporte, w.storagePath)
	if err != nil {
		log.Error().Err(err).Msg("reporte_worker: failed to generate PDF")
		return
	}
	log.Info().Str("pdf", pdfPath).Msg("reporte_worker: closure PDF generated")

	if w.reportesPara == "" {
		return
	}
	turnoNombre := ""
	if reporte.Turno != nil {
		turnoNombre = reporte.Turno.Nombre
	}
	emailJob := EmailJobPayload{
		ToEmail: w.reportesPara,
		Subject: fmt.Sprintf("Cierre de turno %s (%s)", turnoNombre, payload.Fecha),
		Body: fmt.Sprintf("Cierre del turno %s para la fecha %s.\nVentas: %d\nMonto total: %s",
			turnoNombre, payload.Fecha, reporte.TotalVentas, reporte.TotalMonto.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Error().Err(err).Msg("reporte_worker: failed to enqueue email")
	}
}

package infra

// pdf.go — closure report generation using go-pdf/fpdf.
// Produces an A4 sheet with the turno header, the 0-99 matrix laid out as
// a 10x10 grid (sold numeros highlighted with their monto), and the totals
// footer the cashier signs off against.

import (
	"fmt"
	"os"
	"path/filepath"

	"colochas/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateReporteCierrePDF writes the closure report for a turno+fecha and
// returns the absolute path to the generated file.
func GenerateReporteCierrePDF(reporte *dto.ReporteCierreResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	turnoNombre := ""
	var turnoID uint
	if reporte.Turno != nil {
		turnoNombre = reporte.Turno.Nombre
		turnoID = reporte.Turno.ID
	}
	fileName := fmt.Sprintf("cierre_%d_%s.pdf", turnoID, reporte.Fecha)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Reporte de Cierre de Turno", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Turno: %s", turnoNombre), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Fecha: %s", reporte.Fecha), "", 1, "L", false, 0, "")
	estado := "ABIERTO"
	if reporte.EstaCerrado {
		estado = "CERRADO"
	}
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Estado: %s", estado), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Matrix 10x10 ─────────────────────────────────────────────────────────
	// Cell shows the numero on top and the accumulated monto below; unsold
	// numeros show a dash.
	cellW := contentW / 10
	cellH := 12.0

	pdf.SetFont("Helvetica", "", 8)
	for fila := 0; fila < 10; fila++ {
		y := pdf.GetY()
		for col := 0; col < 10; col++ {
			n := fila*10 + col
			cell := reporte.Matriz[n]
			x := 15 + float64(col)*cellW

			if cell.Vendido {
				pdf.SetFillColor(225, 235, 225)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.Rect(x, y, cellW, cellH, "DF")

			pdf.SetXY(x, y+1)
			pdf.SetFont("Helvetica", "B", 8)
			pdf.CellFormat(cellW, 4, fmt.Sprintf("%02d", n), "", 0, "C", false, 0, "")

			pdf.SetXY(x, y+6)
			pdf.SetFont("Helvetica", "", 7)
			monto := "-"
			if cell.Vendido {
				monto = cell.TotalMonto.StringFixed(2)
			}
			pdf.CellFormat(cellW, 4, monto, "", 0, "C", false, 0, "")
		}
		pdf.SetY(y + cellH)
	}
	pdf.Ln(5)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW/2, 7, fmt.Sprintf("Total de ventas: %d", reporte.TotalVentas), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 7, "Monto total: "+reporte.TotalMonto.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, "_______________________", "", 0, "C", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "_______________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Vendedor", "", 0, "C", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Supervisor", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

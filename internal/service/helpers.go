package service

import (
	"context"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

const fechaLayout = "2006-01-02"

// parseFecha parses a YYYY-MM-DD date string. DTO validation already
// enforces the format; this converts it for the repository layer.
func parseFecha(s string) (time.Time, error) {
	f, err := time.Parse(fechaLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Msg: "Fecha invalida. Use formato YYYY-MM-DD"}
	}
	return f, nil
}

// soloFecha reduces a timestamp to its calendar date at UTC midnight,
// the convention under which fechas are persisted. Normalizing here keeps
// "is this fecha today" comparisons correct when the server clock runs in
// a non-UTC location.
func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func turnoToResumen(t *model.Turno) *dto.TurnoResumen {
	if t == nil {
		return nil
	}
	return &dto.TurnoResumen{ID: t.ID, Nombre: t.Nombre, Categoria: t.Categoria}
}

func usuarioToResumen(u *model.Usuario) *dto.UsuarioResumen {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResumen{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		detalles = append(detalles, dto.DetalleVentaResponse{Numero: d.Numero, Monto: d.Monto})
	}
	return &dto.VentaResponse{
		ID:            v.ID,
		NumeroBoucher: v.NumeroBoucher,
		Fecha:         v.Fecha.Format(fechaLayout),
		Total:         v.Total,
		Observaciones: v.Observaciones,
		Turno:         turnoToResumen(v.Turno),
		Usuario:       usuarioToResumen(v.Usuario),
		Detalles:      detalles,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
}

func restriccionToResponse(r *model.RestriccionNumero) dto.RestriccionResponse {
	return dto.RestriccionResponse{
		ID:              r.ID,
		TurnoID:         r.TurnoID,
		Numero:          r.Numero,
		Fecha:           r.Fecha.Format(fechaLayout),
		EstaRestringido: r.EstaRestringido,
		TipoRestriccion: r.TipoRestriccion,
		LimiteMonto:     r.LimiteMonto,
		LimiteCantidad:  r.LimiteCantidad,
		Turno:           turnoToResumen(r.Turno),
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"
	"colochas/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CierreService interface {
	CerrarTurno(ctx context.Context, usuarioID uint, req dto.CerrarTurnoRequest) (*dto.CierreResponse, error)
	ObtenerCierre(ctx context.Context, turnoID uint, fecha string) (*dto.CierreResponse, error)
	ObtenerReporte(ctx context.Context, turnoID uint, fecha string) (*dto.ReporteCierreResponse, error)
}

type cierreService struct {
	repo      repository.CierreRepository
	ventaRepo repository.VentaRepository
	turnoRepo repository.TurnoRepository
	now       func() time.Time
}

func NewCierreService(repo repository.CierreRepository, ventaRepo repository.VentaRepository, turnoRepo repository.TurnoRepository) CierreService {
	return &cierreService{repo: repo, ventaRepo: ventaRepo, turnoRepo: turnoRepo, now: time.Now}
}

// CerrarTurno materializes the day's totals for a turno. A turno+fecha
// closes at most once; repeating the call conflicts.
func (s *cierreService) CerrarTurno(ctx context.Context, usuarioID uint, req dto.CerrarTurnoRequest) (*dto.CierreResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.turnoRepo.FindByID(ctx, req.TurnoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Turno"}
		}
		return nil, err
	}

	if _, err := s.repo.FindByKey(ctx, req.TurnoID, fecha); err == nil {
		return nil, &ConflictError{Msg: fmt.Sprintf("El turno ya fue cerrado para la fecha %s", req.Fecha)}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cantidad, total, err := s.ventaRepo.TotalesTurnoFecha(ctx, req.TurnoID, fecha)
	if err != nil {
		return nil, err
	}

	cierre := model.CierreTurno{
		TurnoID:       req.TurnoID,
		Fecha:         fecha,
		CerradoPor:    usuarioID,
		TotalVentas:   int(cantidad),
		TotalMonto:    total,
		Observaciones: req.Observaciones,
		CerradoEn:     s.now(),
	}
	if err := s.repo.Create(ctx, &cierre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Msg: fmt.Sprintf("El turno ya fue cerrado para la fecha %s", req.Fecha)}
		}
		return nil, err
	}
	return cierreToResponse(&cierre), nil
}

// ObtenerCierre reports the closure state. An unclosed turno+fecha is
// not an error: it returns the live totals with esta_cerrado=false.
func (s *cierreService) ObtenerCierre(ctx context.Context, turnoID uint, fecha string) (*dto.CierreResponse, error) {
	f, err := parseFecha(fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.turnoRepo.FindByID(ctx, turnoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Turno"}
		}
		return nil, err
	}

	cierre, err := s.repo.FindByKey(ctx, turnoID, f)
	if err == nil {
		return cierreToResponse(cierre), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cantidad, total, err := s.ventaRepo.TotalesTurnoFecha(ctx, turnoID, f)
	if err != nil {
		return nil, err
	}
	return &dto.CierreResponse{
		TurnoID:     turnoID,
		Fecha:       fecha,
		EstaCerrado: false,
		TotalVentas: int(cantidad),
		TotalMonto:  total,
	}, nil
}

// ObtenerReporte builds the 0-99 matrix for a turno+fecha. All 100
// numeros appear, unsold ones with monto 0, so the printed sheet always
// has the same shape.
func (s *cierreService) ObtenerReporte(ctx context.Context, turnoID uint, fecha string) (*dto.ReporteCierreResponse, error) {
	f, err := parseFecha(fecha)
	if err != nil {
		return nil, err
	}
	turno, err := s.turnoRepo.FindByID(ctx, turnoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Turno"}
		}
		return nil, err
	}

	rows, err := s.ventaRepo.MatrizNumeros(ctx, turnoID, f)
	if err != nil {
		return nil, err
	}
	matriz := make([]dto.NumeroMatriz, 100)
	for i := range matriz {
		matriz[i] = dto.NumeroMatriz{Numero: i, TotalMonto: decimal.Zero}
	}
	for _, row := range rows {
		if row.Numero < 0 || row.Numero > 99 {
			continue
		}
		matriz[row.Numero].TotalMonto = row.TotalMonto
		matriz[row.Numero].Vendido = true
	}

	cantidad, total, err := s.ventaRepo.TotalesTurnoFecha(ctx, turnoID, f)
	if err != nil {
		return nil, err
	}

	cerrado := false
	if _, err := s.repo.FindByKey(ctx, turnoID, f); err == nil {
		cerrado = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &dto.ReporteCierreResponse{
		Turno:       turnoToResumen(turno),
		Fecha:       fecha,
		Matriz:      matriz,
		TotalVentas: int(cantidad),
		TotalMonto:  total,
		EstaCerrado: cerrado,
	}, nil
}

func cierreToResponse(c *model.CierreTurno) *dto.CierreResponse {
	return &dto.CierreResponse{
		TurnoID:       c.TurnoID,
		Fecha:         c.Fecha.Format(fechaLayout),
		EstaCerrado:   true,
		TotalVentas:   c.TotalVentas,
		TotalMonto:    c.TotalMonto,
		CerradoPor:    usuarioToResumen(c.Usuario),
		CerradoEn:     c.CerradoEn.Format(time.RFC3339),
		Observaciones: c.Observaciones,
	}
}

package service

import (
	"context"
	"time"

	"colochas/internal/dto"
	"colochas/internal/repository"

	"github.com/shopspring/decimal"
)

const kpiTopLimit = 10

type KpiService interface {
	NumerosMasVendidos(ctx context.Context, filter dto.RangoFechasFilter) ([]dto.NumeroMasVendido, error)
	EmpleadosMasVentas(ctx context.Context, filter dto.RangoFechasFilter) ([]dto.EmpleadoVentas, error)
	VentasHoy(ctx context.Context) (*dto.VentasHoyResponse, error)
}

type kpiService struct {
	repo      repository.KpiRepository
	ventaRepo repository.VentaRepository
	now       func() time.Time
}

func NewKpiService(repo repository.KpiRepository, ventaRepo repository.VentaRepository) KpiService {
	return &kpiService{repo: repo, ventaRepo: ventaRepo, now: time.Now}
}

func (s *kpiService) rango(filter dto.RangoFechasFilter) (time.Time, time.Time, error) {
	inicio, err := parseFecha(filter.FechaInicio)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	fin, err := parseFecha(filter.FechaFin)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if fin.Before(inicio) {
		return time.Time{}, time.Time{}, &ValidationError{Msg: "fecha_fin no puede ser anterior a fecha_inicio"}
	}
	return inicio, fin, nil
}

func (s *kpiService) NumerosMasVendidos(ctx context.Context, filter dto.RangoFechasFilter) ([]dto.NumeroMasVendido, error) {
	inicio, fin, err := s.rango(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.NumerosMasVendidos(ctx, inicio, fin, kpiTopLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NumeroMasVendido, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NumeroMasVendido{
			Numero:       r.Numero,
			VecesVendido: r.VecesVendido,
			TotalMonto:   r.TotalMonto,
		})
	}
	return out, nil
}

func (s *kpiService) EmpleadosMasVentas(ctx context.Context, filter dto.RangoFechasFilter) ([]dto.EmpleadoVentas, error) {
	inicio, fin, err := s.rango(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.EmpleadosMasVentas(ctx, inicio, fin, kpiTopLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmpleadoVentas, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.EmpleadoVentas{
			UsuarioID:   r.UsuarioID,
			Name:        r.Name,
			TotalVentas: r.TotalVentas,
			TotalMonto:  r.TotalMonto,
		})
	}
	return out, nil
}

// VentasHoy aggregates today's sales grouped by turno for the dashboard.
func (s *kpiService) VentasHoy(ctx context.Context) (*dto.VentasHoyResponse, error) {
	hoy := soloFecha(s.now())
	ventas, err := s.ventaRepo.ListByFecha(ctx, hoy)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentasHoyResponse{TotalMonto: decimal.Zero}
	porTurno := make(map[uint]*dto.VentasPorTurno)
	orden := make([]uint, 0)

	for i := range ventas {
		v := &ventas[i]
		resp.TotalVentas++
		resp.TotalMonto = resp.TotalMonto.Add(v.Total)

		agg, ok := porTurno[v.TurnoID]
		if !ok {
			agg = &dto.VentasPorTurno{TurnoID: v.TurnoID, Monto: decimal.Zero}
			if v.Turno != nil {
				agg.TurnoNombre = v.Turno.Nombre
			}
			porTurno[v.TurnoID] = agg
			orden = append(orden, v.TurnoID)
		}
		agg.Cantidad++
		agg.Monto = agg.Monto.Add(v.Total)
	}

	resp.VentasPorTurno = make([]dto.VentasPorTurno, 0, len(orden))
	for _, id := range orden {
		resp.VentasPorTurno = append(resp.VentasPorTurno, *porTurno[id])
	}
	return resp, nil
}

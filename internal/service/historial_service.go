package service

import (
	"context"

	"colochas/internal/dto"
	"colochas/internal/repository"

	"github.com/shopspring/decimal"
)

type HistorialService interface {
	ListarVentas(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialVentasResponse, error)
	AnalisisNumeros(ctx context.Context, filter dto.AnalisisFilter) (*dto.AnalisisNumerosResponse, error)
}

type historialService struct {
	ventaRepo repository.VentaRepository
}

func NewHistorialService(ventaRepo repository.VentaRepository) HistorialService {
	return &historialService{ventaRepo: ventaRepo}
}

func (s *historialService) ListarVentas(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialVentasResponse, error) {
	if err := validarRangoFechas(filter.FechaInicio, filter.FechaFin); err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	ventas, total, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.HistorialVentasResponse{
		Data: data,
		Paginacion: dto.Paginacion{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// AnalisisNumeros returns all 100 numeros; the ones absent from the
// aggregation come back zeroed with vendido=false.
func (s *historialService) AnalisisNumeros(ctx context.Context, filter dto.AnalisisFilter) (*dto.AnalisisNumerosResponse, error) {
	if err := validarRangoFechas(filter.FechaInicio, filter.FechaFin); err != nil {
		return nil, err
	}

	rows, err := s.ventaRepo.AnalisisNumeros(ctx, filter)
	if err != nil {
		return nil, err
	}

	numeros := make([]dto.NumeroAnalisis, 100)
	for i := range numeros {
		numeros[i] = dto.NumeroAnalisis{Numero: i, TotalMonto: decimal.Zero}
	}
	vendidos := 0
	for _, row := range rows {
		if row.Numero < 0 || row.Numero > 99 {
			continue
		}
		numeros[row.Numero] = dto.NumeroAnalisis{
			Numero:             row.Numero,
			VecesVendido:       row.VecesVendido,
			TotalMonto:         row.TotalMonto,
			TurnosDiferentes:   row.TurnosDiferentes,
			UsuariosDiferentes: row.UsuariosDiferentes,
			Vendido:            true,
		}
		vendidos++
	}
	return &dto.AnalisisNumerosResponse{
		Numeros:           numeros,
		TotalNumeros:      100,
		NumerosVendidos:   vendidos,
		NumerosNoVendidos: 100 - vendidos,
	}, nil
}

func validarRangoFechas(inicio, fin string) error {
	if inicio == "" || fin == "" {
		return nil
	}
	fi, err := parseFecha(inicio)
	if err != nil {
		return err
	}
	ff, err := parseFecha(fin)
	if err != nil {
		return err
	}
	if ff.Before(fi) {
		return &ValidationError{Msg: "fecha_fin no puede ser anterior a fecha_inicio"}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"colochas/internal/dto"
	"colochas/internal/model"
	"colochas/internal/repository"

	"gorm.io/gorm"
)

type ConfiguracionService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearConfiguracionRequest) (*dto.ConfiguracionResponse, error)
	ObtenerPorClave(ctx context.Context, clave string) (*dto.ConfiguracionResponse, error)
	Listar(ctx context.Context) ([]dto.ConfiguracionResponse, error)
	Actualizar(ctx context.Context, usuarioID uint, clave string, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
}

func NewConfiguracionService(repo repository.ConfiguracionRepository) ConfiguracionService {
	return &configuracionService{repo: repo}
}

func (s *configuracionService) Crear(ctx context.Context, usuarioID uint, req dto.CrearConfiguracionRequest) (*dto.ConfiguracionResponse, error) {
	tipo := req.Tipo
	if tipo == "" {
		tipo = "string"
	}
	c := model.Configuracion{
		Clave:       req.Clave,
		Valor:       req.Valor,
		Tipo:        tipo,
		Descripcion: req.Descripcion,
		Estado:      "activo",
		UpdatedBy:   &usuarioID,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Msg: fmt.Sprintf("Ya existe la configuracion %s", req.Clave)}
		}
		return nil, err
	}
	return configuracionToResponse(&c), nil
}

func (s *configuracionService) ObtenerPorClave(ctx context.Context, clave string) (*dto.ConfiguracionResponse, error) {
	c, err := s.repo.FindByClave(ctx, clave)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Configuracion",
				Msg: fmt.Sprintf("Configuracion %s no encontrada", clave)}
		}
		return nil, err
	}
	return configuracionToResponse(c), nil
}

func (s *configuracionService) Listar(ctx context.Context) ([]dto.ConfiguracionResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConfiguracionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *configuracionToResponse(&rows[i]))
	}
	return out, nil
}

func (s *configuracionService) Actualizar(ctx context.Context, usuarioID uint, clave string, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error) {
	c, err := s.repo.FindByClave(ctx, clave)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entidad: "Configuracion",
				Msg: fmt.Sprintf("Configuracion %s no encontrada", clave)}
		}
		return nil, err
	}
	if req.Valor != nil {
		c.Valor = *req.Valor
	}
	if req.Tipo != nil {
		c.Tipo = *req.Tipo
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}
	c.UpdatedBy = &usuarioID
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return configuracionToResponse(c), nil
}

func configuracionToResponse(c *model.Configuracion) *dto.ConfiguracionResponse {
	return &dto.ConfiguracionResponse{
		ID:          c.ID,
		Clave:       c.Clave,
		Valor:       c.Valor,
		Tipo:        c.Tipo,
		Descripcion: c.Descripcion,
		Estado:      c.Estado,
	}
}

package dto

type CrearConfiguracionRequest struct {
	Clave       string  `json:"clave" validate:"required"`
	Valor       string  `json:"valor" validate:"required"`
	Tipo        string  `json:"tipo"  validate:"omitempty,oneof=string number date bool"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarConfiguracionRequest struct {
	Valor       *string `json:"valor"`
	Tipo        *string `json:"tipo" validate:"omitempty,oneof=string number date bool"`
	Descripcion *string `json:"descripcion"`
}

type ConfiguracionResponse struct {
	ID          uint    `json:"id"`
	Clave       string  `json:"clave"`
	Valor       string  `json:"valor"`
	Tipo        string  `json:"tipo"`
	Descripcion *string `json:"descripcion"`
	Estado      string  `json:"estado"`
}

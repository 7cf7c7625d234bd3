package dto

import "time"

// BeneficioResponse es el DTO de respuesta de un beneficio
type BeneficioResponse struct {
	ID            uint      `json:"id"`
	Titulo        string    `json:"titulo"`
	Descripcion   string    `json:"descripcion"`
	Categoria     string    `json:"categoria"`
	TipoDescuento string    `json:"tipoDescuento"`
	Descuento     float64   `json:"descuento"`
	FechaInicio   time.Time `json:"fechaInicio"`
	FechaFin      time.Time `json:"fechaFin"`
	ComercioID    uint      `json:"comercioId"`
	Comercio      string    `json:"comercio,omitempty"`
	Estado        string    `json:"estado"`
	LimiteUsos    *int      `json:"limiteUsos,omitempty"`
	UsosActuales  int       `json:"usosActuales"`
}

// CrearBeneficioRequest es el DTO de alta de beneficio
type CrearBeneficioRequest struct {
	Titulo        string  `json:"titulo" binding:"required"`
	Descripcion   string  `json:"descripcion"`
	Categoria     string  `json:"categoria"`
	TipoDescuento string  `json:"tipoDescuento"`
	Descuento     float64 `json:"descuento" binding:"required"`
	FechaInicio   string  `json:"fechaInicio" binding:"required"`
	FechaFin      string  `json:"fechaFin" binding:"required"`
	LimiteUsos    *int    `json:"limiteUsos,omitempty"`
	Asociaciones  []int64 `json:"asociaciones,omitempty"`
}

// ActualizarBeneficioRequest es el DTO de actualización de beneficio
type ActualizarBeneficioRequest struct {
	ID          uint    `json:"id" binding:"required"`
	Titulo      string  `json:"titulo"`
	Descripcion string  `json:"descripcion"`
	Categoria   string  `json:"categoria"`
	Descuento   float64 `json:"descuento"`
	FechaInicio string  `json:"fechaInicio"`
	FechaFin    string  `json:"fechaFin"`
	LimiteUsos  *int    `json:"limiteUsos,omitempty"`
}

// CambiarEstadoBeneficioRequest es el DTO de cambio de estado de beneficio
type CambiarEstadoBeneficioRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Estado string `json:"estado" binding:"required"`
}

// FiltrosBeneficio son los filtros estructurados de la búsqueda de beneficios
type FiltrosBeneficio struct {
	Categoria  string `json:"categoria" form:"categoria"`
	Estado     string `json:"estado" form:"estado"`
	ComercioID uint   `json:"comercioId" form:"comercioId"`
}

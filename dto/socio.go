package dto

import "time"

// SocioResponse es el DTO de respuesta de un socio
type SocioResponse struct {
	ID              uint       `json:"id"`
	Nombre          string     `json:"nombre"`
	Email           string     `json:"email"`
	Telefono        string     `json:"telefono"`
	Estado          string     `json:"estado"`
	EstadoMembresia string     `json:"estadoMembresia"`
	AsociacionID    *uint      `json:"asociacionId,omitempty"`
	CuotaMensual    float64    `json:"cuotaMensual"`
	FechaAlta       time.Time  `json:"fechaAlta"`
	FechaUltimoPago *time.Time `json:"fechaUltimoPago,omitempty"`
	UltimoAcceso    *time.Time `json:"ultimoAcceso,omitempty"`
}

// CrearSocioRequest es el DTO de alta de socio
type CrearSocioRequest struct {
	Nombre       string  `json:"nombre" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Telefono     string  `json:"telefono"`
	DNI          string  `json:"dni"`
	AsociacionID *uint   `json:"asociacionId,omitempty"`
	CuotaMensual float64 `json:"cuotaMensual"`
}

// ActualizarSocioRequest es el DTO de actualización de socio
type ActualizarSocioRequest struct {
	ID           uint    `json:"id" binding:"required"`
	Nombre       string  `json:"nombre"`
	Telefono     string  `json:"telefono"`
	AsociacionID *uint   `json:"asociacionId,omitempty"`
	CuotaMensual float64 `json:"cuotaMensual"`
}

// CambiarEstadoSocioRequest es el DTO de cambio de estado de socio
type CambiarEstadoSocioRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Estado string `json:"estado" binding:"required"`
}

// RegistrarPagoRequest es el DTO del registro de pago de cuota
type RegistrarPagoRequest struct {
	SocioID uint       `json:"socioId" binding:"required"`
	Monto   float64    `json:"monto" binding:"required"`
	Fecha   *time.Time `json:"fecha,omitempty"`
}

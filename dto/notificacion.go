package dto

import "time"

// CrearNotificacionRequest es el DTO de alta de notificación
type CrearNotificacionRequest struct {
	Titulo       string     `json:"titulo" binding:"required"`
	Mensaje      string     `json:"mensaje" binding:"required"`
	Tipo         string     `json:"tipo"`
	Prioridad    string     `json:"prioridad"`
	Categoria    string     `json:"categoria"`
	Enlace       string     `json:"enlace"`
	SocioID      *uint      `json:"socioId,omitempty"`
	AsociacionID *uint      `json:"asociacionId,omitempty"`
	ExpiraEn     *time.Time `json:"expiraEn,omitempty"`
}

// CambiarEstadoNotificacionRequest es el DTO de transición de estado
type CambiarEstadoNotificacionRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Estado string `json:"estado" binding:"required"`
}

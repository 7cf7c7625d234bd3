package builders

import (
	"time"

	"socios/models"
)

// NotificacionBuilder arma una notificación paso a paso
type NotificacionBuilder struct {
	notificacion *models.Notificacion
}

// NewNotificacionBuilder crea una instancia nueva de NotificacionBuilder
func NewNotificacionBuilder() *NotificacionBuilder {
	return &NotificacionBuilder{
		notificacion: &models.Notificacion{},
	}
}

// WithTitulo agrega el título
func (b *NotificacionBuilder) WithTitulo(titulo string) *NotificacionBuilder {
	b.notificacion.Titulo = titulo
	return b
}

// WithMensaje agrega el cuerpo del mensaje
func (b *NotificacionBuilder) WithMensaje(mensaje string) *NotificacionBuilder {
	b.notificacion.Mensaje = mensaje
	return b
}

// WithTipo agrega el tipo
func (b *NotificacionBuilder) WithTipo(tipo string) *NotificacionBuilder {
	b.notificacion.Tipo = tipo
	return b
}

// WithPrioridad agrega la prioridad
func (b *NotificacionBuilder) WithPrioridad(prioridad string) *NotificacionBuilder {
	b.notificacion.Prioridad = prioridad
	return b
}

// WithCategoria agrega la categoría
func (b *NotificacionBuilder) WithCategoria(categoria string) *NotificacionBuilder {
	b.notificacion.Categoria = categoria
	return b
}

// WithEnlace agrega el enlace de destino
func (b *NotificacionBuilder) WithEnlace(enlace string) *NotificacionBuilder {
	b.notificacion.Enlace = enlace
	return b
}

// ParaSocio dirige la notificación a un socio puntual
func (b *NotificacionBuilder) ParaSocio(socioID uint) *NotificacionBuilder {
	b.notificacion.SocioID = &socioID
	return b
}

// ParaAsociacion dirige la notificación a toda una asociación
func (b *NotificacionBuilder) ParaAsociacion(asociacionID uint) *NotificacionBuilder {
	b.notificacion.AsociacionID = &asociacionID
	return b
}

// WithExpiracion agrega la fecha de expiración
func (b *NotificacionBuilder) WithExpiracion(expiraEn time.Time) *NotificacionBuilder {
	b.notificacion.ExpiraEn = &expiraEn
	return b
}

// Build devuelve la notificación armada
func (b *NotificacionBuilder) Build() *models.Notificacion {
	return b.notificacion
}

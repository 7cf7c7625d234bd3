package controllers

import (
	"time"

	"socios/builders"
	"socios/config"
	"socios/constants"
	"socios/dto"
	"socios/models"
	"socios/response"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// CreateNotificacion crea una notificación y la empuja por websocket
func CreateNotificacion(c *gin.Context) {
	var input dto.CrearNotificacionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	builder := builders.NewNotificacionBuilder().
		WithTitulo(input.Titulo).
		WithMensaje(input.Mensaje).
		WithCategoria(input.Categoria).
		WithEnlace(input.Enlace)

	if input.Tipo != "" {
		builder.WithTipo(input.Tipo)
	} else {
		builder.WithTipo(constants.NotificacionInfo)
	}
	if input.Prioridad != "" {
		builder.WithPrioridad(input.Prioridad)
	} else {
		builder.WithPrioridad(constants.PrioridadMedia)
	}
	if input.SocioID != nil {
		builder.ParaSocio(*input.SocioID)
	}
	if input.AsociacionID != nil {
		builder.ParaAsociacion(*input.AsociacionID)
	}
	if input.ExpiraEn != nil {
		builder.WithExpiracion(*input.ExpiraEn)
	}

	notificacion := builder.Build()
	notificacion.Estado = constants.NotificacionNoLeida

	if err := config.DB.Create(notificacion).Error; err != nil {
		response.ServerError(c)
		return
	}

	if data, err := json.Marshal(notificacion); err == nil {
		if err := notifier.SendMessage(string(data)); err != nil {
			appLogger.Error("no se pudo empujar la notificación %d: %v", notificacion.ID, err)
		}
	}

	response.Success(c, notificacion)
}

// GetNotificaciones lista las notificaciones vigentes para el socio
// autenticado: las propias, las de su asociación y las globales
func GetNotificaciones(c *gin.Context) {
	userID := c.GetUint("userID")

	var socio models.Socio
	if err := config.DB.First(&socio, userID).Error; err != nil {
		response.NotFound(c)
		return
	}

	query := config.DB.Where("socio_id = ?", userID).
		Or("socio_id IS NULL AND asociacion_id IS NULL")
	if socio.AsociacionID != nil {
		query = query.Or("socio_id IS NULL AND asociacion_id = ?", *socio.AsociacionID)
	}

	var notificaciones []models.Notificacion
	if err := config.DB.Where(query).
		Order("created_at desc").Limit(100).
		Find(&notificaciones).Error; err != nil {
		response.ServerError(c)
		return
	}

	ahora := time.Now()
	vigentes := make([]models.Notificacion, 0, len(notificaciones))
	for i := range notificaciones {
		if notificaciones[i].Vigente(ahora) {
			vigentes = append(vigentes, notificaciones[i])
		}
	}

	response.SuccessWithTotal(c, vigentes, len(vigentes))
}

// ChangeNotificacionStatus mueve una notificación entre
// no_leida/leida/archivada
func ChangeNotificacionStatus(c *gin.Context) {
	var input dto.CambiarEstadoNotificacionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var notificacion models.Notificacion
	if err := config.DB.First(&notificacion, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if !notificacion.PuedeTransicionar(input.Estado) {
		response.ValidationError(c, "transición de estado no permitida: "+notificacion.Estado+" -> "+input.Estado)
		return
	}

	if err := config.DB.Model(&notificacion).Update("estado", input.Estado).Error; err != nil {
		response.ServerError(c)
		return
	}

	notificacion.Estado = input.Estado
	response.Success(c, notificacion)
}

// DeleteNotificacion elimina una notificación
func DeleteNotificacion(c *gin.Context) {
	var notificacion models.Notificacion
	if err := config.DB.First(&notificacion, c.Param("id")).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := config.DB.Delete(&notificacion).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"id": notificacion.ID})
}

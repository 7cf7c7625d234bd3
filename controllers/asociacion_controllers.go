package controllers

import (
	"strconv"

	"socios/config"
	"socios/constants"
	"socios/dto"
	"socios/models"
	"socios/response"
	"socios/services"

	"github.com/gin-gonic/gin"
)

func asociacionAResponse(a *models.Asociacion) dto.AsociacionResponse {
	return dto.AsociacionResponse{
		ID:                a.ID,
		Nombre:            a.Nombre,
		Email:             a.Email,
		Telefono:          a.Telefono,
		Direccion:         a.Direccion,
		Descripcion:       a.Descripcion,
		Logo:              a.Logo,
		TotalSocios:       a.TotalSocios,
		SociosActivos:     a.SociosActivos,
		IngresosEstimados: a.IngresosEstimados,
	}
}

// GetAsociaciones lista todas las asociaciones
func GetAsociaciones(c *gin.Context) {
	var asociaciones []models.Asociacion
	if err := config.DB.Order("nombre asc").Find(&asociaciones).Error; err != nil {
		response.ServerError(c)
		return
	}

	resultado := make([]dto.AsociacionResponse, 0, len(asociaciones))
	for i := range asociaciones {
		resultado = append(resultado, asociacionAResponse(&asociaciones[i]))
	}

	response.SuccessWithTotal(c, resultado, len(resultado))
}

// GetAsociacionDetail devuelve una asociación puntual
func GetAsociacionDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var asociacion models.Asociacion
	if err := config.DB.First(&asociacion, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, asociacionAResponse(&asociacion))
}

// CreateAsociacion da de alta una asociación
func CreateAsociacion(c *gin.Context) {
	var input dto.CrearAsociacionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	hashedPassword, err := services.HashPassword(input.Password)
	if err != nil {
		response.ServerError(c)
		return
	}

	asociacion := models.Asociacion{
		Nombre:      input.Nombre,
		Email:       input.Email,
		Password:    hashedPassword,
		Telefono:    input.Telefono,
		Direccion:   input.Direccion,
		Descripcion: input.Descripcion,
	}

	if err := config.DB.Create(&asociacion).Error; err != nil {
		response.Conflict(c)
		return
	}

	response.Success(c, asociacionAResponse(&asociacion))
}

// UpdateAsociacion actualiza los datos editables de una asociación
func UpdateAsociacion(c *gin.Context) {
	var input dto.ActualizarAsociacionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var asociacion models.Asociacion
	if err := config.DB.First(&asociacion, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if input.Nombre != "" {
		asociacion.Nombre = input.Nombre
	}
	if input.Telefono != "" {
		asociacion.Telefono = input.Telefono
	}
	if input.Direccion != "" {
		asociacion.Direccion = input.Direccion
	}
	if input.Descripcion != "" {
		asociacion.Descripcion = input.Descripcion
	}

	if err := config.DB.Save(&asociacion).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, asociacionAResponse(&asociacion))
}

// RefrescarAgregadosAsociacion recalcula las proyecciones agregadas de una
// asociación desde la tabla de socios
func RefrescarAgregadosAsociacion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var asociacion models.Asociacion
	if err := config.DB.First(&asociacion, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := RecalcularAgregados(&asociacion); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, asociacionAResponse(&asociacion))
}

// RecalcularAgregados reconstruye los contadores de la asociación. También
// lo corre el cron nocturno sobre todas las asociaciones.
func RecalcularAgregados(asociacion *models.Asociacion) error {
	var total, activos int64
	if err := config.DB.Model(&models.Socio{}).
		Where("asociacion_id = ?", asociacion.ID).
		Count(&total).Error; err != nil {
		return err
	}
	if err := config.DB.Model(&models.Socio{}).
		Where("asociacion_id = ? AND estado = ?", asociacion.ID, constants.SocioActivo).
		Count(&activos).Error; err != nil {
		return err
	}

	var ingresos float64
	if err := config.DB.Model(&models.Socio{}).
		Where("asociacion_id = ? AND estado_membresia = ?", asociacion.ID, constants.MembresiaAlDia).
		Select("COALESCE(SUM(cuota_mensual), 0)").
		Scan(&ingresos).Error; err != nil {
		return err
	}

	asociacion.TotalSocios = int(total)
	asociacion.SociosActivos = int(activos)
	asociacion.IngresosEstimados = ingresos

	return config.DB.Model(asociacion).Updates(map[string]interface{}{
		"total_socios":       asociacion.TotalSocios,
		"socios_activos":     asociacion.SociosActivos,
		"ingresos_estimados": asociacion.IngresosEstimados,
	}).Error
}

package controllers

import (
	"strconv"
	"time"

	"socios/commands"
	"socios/config"
	"socios/constants"
	"socios/dto"
	"socios/models"
	"socios/response"
	"socios/services"
	"socios/validator"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

func beneficioAResponse(b *models.Beneficio) dto.BeneficioResponse {
	resp := dto.BeneficioResponse{
		ID:            b.ID,
		Titulo:        b.Titulo,
		Descripcion:   b.Descripcion,
		Categoria:     b.Categoria,
		TipoDescuento: b.TipoDescuento,
		Descuento:     b.Descuento,
		FechaInicio:   b.FechaInicio,
		FechaFin:      b.FechaFin,
		ComercioID:    b.ComercioID,
		Estado:        b.Estado,
		LimiteUsos:    b.LimiteUsos,
		UsosActuales:  b.UsosActuales,
	}
	if b.Comercio != nil {
		resp.Comercio = b.Comercio.Nombre
	}
	return resp
}

func beneficiosAResponse(beneficios []models.Beneficio) []dto.BeneficioResponse {
	resultado := make([]dto.BeneficioResponse, 0, len(beneficios))
	for i := range beneficios {
		resultado = append(resultado, beneficioAResponse(&beneficios[i]))
	}
	return resultado
}

// GetBeneficiosDisponibles lista los beneficios usables por el socio autenticado
func GetBeneficiosDisponibles(c *gin.Context) {
	userID := c.GetUint("userID")

	cacheKey := "beneficios:disponibles:" + strconv.Itoa(int(userID))
	var cacheados []models.Beneficio
	if ok, err := cacheService.Get(c.Request.Context(), cacheKey, &cacheados); err == nil && ok {
		response.SuccessWithTotal(c, beneficiosAResponse(cacheados), len(cacheados))
		return
	}

	beneficios, err := beneficioService.ListarDisponibles(c.Request.Context(), userID)
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := cacheService.Set(c.Request.Context(), cacheKey, beneficios, services.TTLColeccion); err != nil {
		appLogger.Error("no se pudo cachear los beneficios del socio %d: %v", userID, err)
	}

	response.SuccessWithTotal(c, beneficiosAResponse(beneficios), len(beneficios))
}

// GetBeneficiosComercio lista los beneficios del comercio autenticado
func GetBeneficiosComercio(c *gin.Context) {
	userID := c.GetUint("userID")

	beneficios, err := beneficioService.ListarPorComercio(c.Request.Context(), userID)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, beneficiosAResponse(beneficios), len(beneficios))
}

// GetBeneficiosAsociacion lista los beneficios de los comercios adheridos
func GetBeneficiosAsociacion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	beneficios, err := beneficioService.ListarPorAsociacion(c.Request.Context(), uint(id))
	if err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, beneficiosAResponse(beneficios), len(beneficios))
}

// BuscarBeneficios corre la búsqueda por término libre más filtros
func BuscarBeneficios(c *gin.Context) {
	var filtros dto.FiltrosBeneficio
	if err := c.ShouldBindQuery(&filtros); err != nil {
		response.BadRequest(c, "Filtros inválidos")
		return
	}

	beneficios, err := beneficioService.Buscar(c.Request.Context(), c.Query("q"), filtros)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	response.SuccessWithTotal(c, beneficiosAResponse(beneficios), len(beneficios))
}

// GetBeneficioDetail devuelve un beneficio puntual
func GetBeneficioDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var beneficio models.Beneficio
	if err := config.DB.Preload("Comercio").First(&beneficio, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, beneficioAResponse(&beneficio))
}

// CreateBeneficio da de alta un beneficio del comercio autenticado
func CreateBeneficio(c *gin.Context) {
	userID := c.GetUint("userID")

	var input dto.CrearBeneficioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	fechaInicio, fechaFin, err := validator.ValidateRangoFechas(input.FechaInicio, input.FechaFin)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	tipoDescuento := input.TipoDescuento
	if tipoDescuento == "" {
		tipoDescuento = constants.DescuentoPorcentaje
	}

	beneficio := models.Beneficio{
		Titulo:        input.Titulo,
		Descripcion:   input.Descripcion,
		Categoria:     input.Categoria,
		TipoDescuento: tipoDescuento,
		Descuento:     input.Descuento,
		FechaInicio:   fechaInicio,
		FechaFin:      fechaFin,
		ComercioID:    userID,
		LimiteUsos:    input.LimiteUsos,
		Asociaciones:  pq.Int64Array(input.Asociaciones),
	}

	if err := validator.ValidateBeneficio(&beneficio); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := commands.NewCreateBeneficioCommand(&beneficio, config.DB).Execute(); err != nil {
		response.ServerError(c)
		return
	}

	invalidarBeneficios(c)
	response.Success(c, beneficioAResponse(&beneficio))
}

// UpdateBeneficio actualiza un beneficio existente
func UpdateBeneficio(c *gin.Context) {
	var input dto.ActualizarBeneficioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var beneficio models.Beneficio
	if err := config.DB.First(&beneficio, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if input.Titulo != "" {
		beneficio.Titulo = input.Titulo
	}
	if input.Descripcion != "" {
		beneficio.Descripcion = input.Descripcion
	}
	if input.Categoria != "" {
		beneficio.Categoria = input.Categoria
	}
	if input.Descuento > 0 {
		beneficio.Descuento = input.Descuento
	}
	if input.FechaInicio != "" && input.FechaFin != "" {
		fechaInicio, fechaFin, err := validator.ValidateRangoFechas(input.FechaInicio, input.FechaFin)
		if err != nil {
			response.ValidationError(c, err.Error())
			return
		}
		beneficio.FechaInicio = fechaInicio
		beneficio.FechaFin = fechaFin
	}
	if input.LimiteUsos != nil {
		beneficio.LimiteUsos = input.LimiteUsos
	}

	if err := validator.ValidateBeneficio(&beneficio); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := commands.NewUpdateBeneficioCommand(&beneficio, config.DB).Execute(); err != nil {
		response.ServerError(c)
		return
	}

	invalidarBeneficios(c)
	response.Success(c, beneficioAResponse(&beneficio))
}

// ChangeBeneficioStatus cambia el estado de un beneficio
func ChangeBeneficioStatus(c *gin.Context) {
	var input dto.CambiarEstadoBeneficioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var beneficio models.Beneficio
	if err := config.DB.First(&beneficio, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	beneficio.Estado = input.Estado
	if err := beneficio.ValidateEstado(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Model(&beneficio).Update("estado", beneficio.Estado).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidarBeneficios(c)
	response.Success(c, beneficioAResponse(&beneficio))
}

// DeleteBeneficio borra un beneficio
func DeleteBeneficio(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	if err := commands.NewDeleteBeneficioCommand(uint(id), config.DB).Execute(); err != nil {
		response.ServerError(c)
		return
	}

	invalidarBeneficios(c)
	response.Success(c, nil)
}

// GetCodigoQRBeneficio genera el payload QR de un beneficio puntual
func GetCodigoQRBeneficio(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var beneficio models.Beneficio
	if err := config.DB.First(&beneficio, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	payload, err := services.GenerarCodigoQR(beneficio.ComercioID, &beneficio.ID)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"payload":   payload,
		"generado":  time.Now(),
		"beneficio": beneficio.Titulo,
	})
}

func invalidarBeneficios(c *gin.Context) {
	if err := cacheService.Invalidate(c.Request.Context(), "beneficios"); err != nil {
		appLogger.Error("no se pudo invalidar el cache de beneficios: %v", err)
	}
}

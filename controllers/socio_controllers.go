package controllers

import (
	"strconv"
	"time"

	"socios/config"
	"socios/dto"
	"socios/models"
	"socios/response"
	"socios/validator"

	"github.com/gin-gonic/gin"
)

func socioAResponse(s *models.Socio) dto.SocioResponse {
	return dto.SocioResponse{
		ID:              s.ID,
		Nombre:          s.Nombre,
		Email:           s.Email,
		Telefono:        s.Telefono,
		Estado:          s.Estado,
		EstadoMembresia: s.EstadoMembresia,
		AsociacionID:    s.AsociacionID,
		CuotaMensual:    s.CuotaMensual,
		FechaAlta:       s.FechaAlta,
		FechaUltimoPago: s.FechaUltimoPago,
		UltimoAcceso:    s.UltimoAcceso,
	}
}

// GetSocios lista los socios de una asociación, con paginación y filtro
// opcional por estado
func GetSocios(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.Socio{})

	if asociacionID := c.Query("asociacionId"); asociacionID != "" {
		query = query.Where("asociacion_id = ?", asociacionID)
	}
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var socios []models.Socio
	if err := query.Order("nombre asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&socios).Error; err != nil {
		response.ServerError(c)
		return
	}

	resultado := make([]dto.SocioResponse, 0, len(socios))
	for i := range socios {
		resultado = append(resultado, socioAResponse(&socios[i]))
	}

	response.SuccessWithPagination(c, resultado, page, limit, int(total))
}

// GetSocioDetail devuelve un socio puntual
func GetSocioDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var socio models.Socio
	if err := config.DB.Preload("Asociacion").First(&socio, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, socioAResponse(&socio))
}

// UpdateSocio actualiza los datos editables de un socio
func UpdateSocio(c *gin.Context) {
	var input dto.ActualizarSocioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var socio models.Socio
	if err := config.DB.First(&socio, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if input.Nombre != "" {
		socio.Nombre = input.Nombre
	}
	if input.Telefono != "" {
		socio.Telefono = input.Telefono
	}
	if input.AsociacionID != nil {
		socio.AsociacionID = input.AsociacionID
	}
	if input.CuotaMensual > 0 {
		socio.CuotaMensual = input.CuotaMensual
	}

	if err := validator.ValidateSocio(&socio); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Save(&socio).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, socioAResponse(&socio))
}

// ChangeSocioStatus cambia el estado administrativo de un socio
func ChangeSocioStatus(c *gin.Context) {
	var input dto.CambiarEstadoSocioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var socio models.Socio
	if err := config.DB.First(&socio, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	socio.Estado = input.Estado
	if err := socio.ValidateEstado(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Model(&socio).Update("estado", socio.Estado).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, socioAResponse(&socio))
}

// RegistrarPago asienta el pago de cuota de un socio
func RegistrarPago(c *gin.Context) {
	var input dto.RegistrarPagoRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	if err := validator.ValidateMonto(input.Monto); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	fecha := time.Now()
	if input.Fecha != nil {
		fecha = *input.Fecha
	}

	socio, err := membresiaService.RegistrarPago(c.Request.Context(), input.SocioID, input.Monto, fecha)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, socioAResponse(socio))
}

// GetHistorialSocio lista las validaciones del socio autenticado
func GetHistorialSocio(c *gin.Context) {
	userID := c.GetUint("userID")
	limite, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	usos, err := validacionService.Historial(c.Request.Context(), userID, limite)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, usos, len(usos))
}

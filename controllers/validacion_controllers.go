package controllers

import (
	"strconv"

	"socios/constants"
	"socios/dto"
	"socios/response"
	"socios/services/notification"

	"github.com/gin-gonic/gin"
)

// ValidarCodigo procesa el escaneo de un QR por el socio autenticado.
// Los rechazos de negocio vuelven como 200 con el motivo en el cuerpo: el
// UI del comercio los presenta, no son errores HTTP.
func ValidarCodigo(c *gin.Context) {
	userID := c.GetUint("userID")

	var input dto.ValidarCodigoRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	resultado, err := validacionService.Validar(c.Request.Context(), userID, input)
	if err != nil {
		appLogger.Error("validación fallida por infraestructura: %v", err)
		response.ServerError(c)
		return
	}

	if resultado.Estado == constants.ValidacionExitosa {
		mensaje := notification.NewMessageBuilder(userID, resultado.Beneficio, resultado.MontoDescuento).Build()
		if err := notifier.SendMessage(mensaje); err != nil {
			appLogger.Error("no se pudo notificar la validación: %v", err)
		}
	}

	response.Success(c, resultado)
}

// GetHistorialComercio lista las validaciones recibidas por el comercio
// autenticado
func GetHistorialComercio(c *gin.Context) {
	userID := c.GetUint("userID")
	limite, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	usos, err := validacionService.HistorialComercio(c.Request.Context(), userID, limite)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, usos, len(usos))
}

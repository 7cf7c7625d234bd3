package controllers

import (
	"socios/config"
	"socios/constants"
	"socios/dto"
	"socios/errors"
	"socios/models"
	"socios/response"
	"socios/services"

	"github.com/gin-gonic/gin"
)

// RegisterSocio da de alta un socio nuevo
func RegisterSocio(c *gin.Context) {
	var input dto.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	socio, err := services.CreateSocio(input)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeUserExists {
			response.Conflict(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, socioAResponse(&socio))
}

// Login inicia sesión con email y contraseña
func Login(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	sesion, err := services.Login(input)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	response.Success(c, sesion)
}

// AuthGoogle inicia sesión con un ID token de Google
func AuthGoogle(c *gin.Context) {
	var input dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	sesion, err := services.LoginGoogle(input)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	response.Success(c, sesion)
}

// CambiarPassword cambia la contraseña del socio autenticado
func CambiarPassword(c *gin.Context) {
	userID := c.GetUint("userID")

	var input dto.CambiarPasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	if err := services.CambiarPassword(userID, input); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}

// GetPerfil devuelve el perfil del usuario autenticado según su rol
func GetPerfil(c *gin.Context) {
	userID := c.GetUint("userID")
	userRole := c.GetInt("userRole")

	switch userRole {
	case constants.RolAsociacion:
		var asociacion models.Asociacion
		if err := config.DB.First(&asociacion, userID).Error; err != nil {
			response.NotFound(c)
			return
		}
		response.Success(c, asociacion)
	case constants.RolComercio:
		var comercio models.Comercio
		if err := config.DB.First(&comercio, userID).Error; err != nil {
			response.NotFound(c)
			return
		}
		response.Success(c, comercio)
	default:
		var socio models.Socio
		if err := config.DB.Preload("Asociacion").First(&socio, userID).Error; err != nil {
			response.NotFound(c)
			return
		}
		response.Success(c, socioAResponse(&socio))
	}
}

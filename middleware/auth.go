package middleware

import (
	"strings"

	"socios/constants"
	"socios/errors"
	"socios/response"
	"socios/services"

	"github.com/gin-gonic/gin"
)

// tieneRol chequea la pertenencia al conjunto de roles. El admin pasa
// cualquier puerta.
func tieneRol(roles []int, rol int) bool {
	if rol == constants.RolAdmin {
		return true
	}
	for _, r := range roles {
		if r == rol {
			return true
		}
	}
	return false
}

// AuthMiddleware valida el token Bearer y, si se pasan roles, exige que el
// usuario tenga uno de ellos. Deja userID y userRole en el context.
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		userID, userRole, err := services.GetUserIDFromToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !tieneRol(roles, userRole) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// RoleMiddleware exige que el usuario ya autenticado tenga uno de los roles
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !tieneRol(roles, userRole.(int)) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ErrorHandler convierte los errores acumulados en una respuesta uniforme
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if appErr, ok := c.Errors.Last().Err.(*errors.AppError); ok {
			response.Error(c, 0, appErr.Message)
			return
		}
		response.ServerError(c)
	}
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode define el código de error
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail    ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidRole     ErrorCode = "INVALID_ROLE"

	// Entity errors
	ErrCodeInvalidID     ErrorCode = "INVALID_ID"
	ErrCodeInvalidEstado ErrorCode = "INVALID_ESTADO"
	ErrCodeInvalidMonto  ErrorCode = "INVALID_MONTO"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Business errors
	ErrCodeMembresiaVencida  ErrorCode = "MEMBRESIA_VENCIDA"
	ErrCodeComercioNoVinculado ErrorCode = "COMERCIO_NO_VINCULADO"
	ErrCodeBeneficioAgotado  ErrorCode = "BENEFICIO_AGOTADO"
	ErrCodeCommitError       ErrorCode = "COMMIT_ERROR"
	ErrCodeInvalidOperation  ErrorCode = "INVALID_OPERATION"
)

// AppError define el error de la aplicación
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAppError crea un AppError nuevo
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError verifica si el error es un AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extrae el AppError de un error
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

var (
	// Socio errors
	ErrSocioNotFound    = errors.New("socio no encontrado")
	ErrSocioExists      = errors.New("el socio ya existe")
	ErrSocioSuspendido  = errors.New("socio suspendido")
	ErrMembresiaVencida = errors.New("membresía vencida")

	// Comercio / adhesión errors
	ErrComercioNotFound   = errors.New("comercio no encontrado")
	ErrAdhesionNotFound   = errors.New("adhesión no encontrada")
	ErrComercioNoVinculado = errors.New("el comercio no está vinculado a la asociación")

	// Beneficio errors
	ErrBeneficioNotFound     = errors.New("beneficio no encontrado")
	ErrBeneficioNoDisponible = errors.New("beneficio no disponible")
	ErrBeneficioAgotado      = errors.New("beneficio agotado")

	// Validación errors
	ErrCodigoInvalido = errors.New("código escaneado inválido")
	ErrCommitFallido  = errors.New("no se pudo registrar la validación")

	// Validation errors
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrMissingRequired = errors.New("falta un campo obligatorio")
	ErrInvalidFormat   = errors.New("formato inválido")
)

package validator

import (
	"regexp"
	"time"

	"socios/constants"
	"socios/errors"
	"socios/models"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

func init() {
	// Los DTOs declaran sus reglas con el tag binding de gin
	validate.SetTagName("binding")
}

// ValidateStruct corre las reglas declaradas en los tags binding/validate
// de un DTO
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, err.Error(), err)
	}
	return nil
}

// ValidateSocio valida los datos de alta de un socio
func ValidateSocio(socio *models.Socio) error {
	if socio.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "el email no puede estar vacío", nil)
	}

	if !isValidEmail(socio.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "el email no es válido", nil)
	}

	if socio.Telefono != "" && !isValidPhone(socio.Telefono) {
		return errors.NewAppError(errors.ErrCodeValidation, "el teléfono no es válido", nil)
	}

	if socio.CuotaMensual < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidMonto, "la cuota mensual no puede ser negativa", nil)
	}

	return socio.ValidateEstado()
}

// ValidateBeneficio valida los datos de un beneficio antes de persistirlo
func ValidateBeneficio(beneficio *models.Beneficio) error {
	if beneficio.Titulo == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "el título no puede estar vacío", nil)
	}

	if beneficio.ComercioID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "el beneficio necesita un comercio", nil)
	}

	switch beneficio.TipoDescuento {
	case constants.DescuentoPorcentaje:
		if beneficio.Descuento < 0 || beneficio.Descuento > 100 {
			return errors.NewAppError(errors.ErrCodeInvalidMonto, "el porcentaje de descuento debe estar entre 0 y 100", nil)
		}
	case constants.DescuentoMontoFijo:
		if beneficio.Descuento < 0 {
			return errors.NewAppError(errors.ErrCodeInvalidMonto, "el monto de descuento no puede ser negativo", nil)
		}
	default:
		return errors.NewAppError(errors.ErrCodeValidation, "tipo de descuento desconocido: "+beneficio.TipoDescuento, nil)
	}

	if !beneficio.FechaFin.IsZero() && beneficio.FechaFin.Before(beneficio.FechaInicio) {
		return errors.NewAppError(errors.ErrCodeValidation, "la fecha de fin debe ser posterior a la de inicio", nil)
	}

	if beneficio.LimiteUsos != nil && *beneficio.LimiteUsos <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "el límite de usos debe ser mayor a cero", nil)
	}

	return beneficio.ValidateEstado()
}

// ValidateRangoFechas valida un rango de fechas en formato 2006-01-02
func ValidateRangoFechas(desde, hasta string) (time.Time, time.Time, error) {
	fechaDesde, err := time.Parse("2006-01-02", desde)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "la fecha de inicio no es válida", err)
	}

	fechaHasta, err := time.Parse("2006-01-02", hasta)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "la fecha de fin no es válida", err)
	}

	if fechaHasta.Before(fechaDesde) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeValidation, "la fecha de fin debe ser posterior a la de inicio", nil)
	}

	return fechaDesde, fechaHasta, nil
}

// ValidateMonto valida que un monto no sea negativo
func ValidateMonto(monto float64) error {
	if monto < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidMonto, "el monto no puede ser negativo", nil)
	}
	return nil
}

// isValidEmail verifica el formato del email
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone verifica el formato del teléfono
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9+\-\s]{6,15}$`)
	return phoneRegex.MatchString(phone)
}

package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"socios/config"
	"socios/constants"
	"socios/dto"
	"socios/errors"
	"socios/models"
	"socios/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// TokenExpiryMinutos es la vida útil del token de acceso
const TokenExpiryMinutos = 3 * 24 * 60

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// cuenta es la vista mínima común de las tres tablas de usuarios
type cuenta struct {
	ID       uint
	Nombre   string
	Email    string
	Password string
	Rol      int
}

// GetSocioByEmail busca un socio por email
func GetSocioByEmail(email string) (models.Socio, error) {
	var socio models.Socio
	result := config.DB.Where("email = ?", email).First(&socio)
	if result.Error == gorm.ErrRecordNotFound {
		return socio, fmt.Errorf("no se encontró un socio con el email %s", email)
	}
	if result.Error != nil {
		return socio, result.Error
	}
	return socio, nil
}

// buscarCuenta resuelve el email contra las tres tablas, en orden fijo
func buscarCuenta(email string) (*cuenta, error) {
	var socio models.Socio
	if err := config.DB.Where("email = ?", email).First(&socio).Error; err == nil {
		return &cuenta{ID: socio.ID, Nombre: socio.Nombre, Email: socio.Email, Password: socio.Password, Rol: constants.RolSocio}, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var asociacion models.Asociacion
	if err := config.DB.Where("email = ?", email).First(&asociacion).Error; err == nil {
		return &cuenta{ID: asociacion.ID, Nombre: asociacion.Nombre, Email: asociacion.Email, Password: asociacion.Password, Rol: constants.RolAsociacion}, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var comercio models.Comercio
	if err := config.DB.Where("email = ?", email).First(&comercio).Error; err == nil {
		return &cuenta{ID: comercio.ID, Nombre: comercio.Nombre, Email: comercio.Email, Password: comercio.Password, Rol: constants.RolComercio}, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	return nil, errors.NewAppError(errors.ErrCodeUserNotFound, "usuario no encontrado", nil)
}

// CreateSocio da de alta un socio con la contraseña hasheada. El estado de
// membresía arranca pendiente: se deriva del primer pago de cuota.
func CreateSocio(input dto.RegisterRequest) (models.Socio, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return models.Socio{}, err
	}

	if _, err := buscarCuenta(input.Email); err == nil {
		return models.Socio{}, errors.NewAppError(errors.ErrCodeUserExists, fmt.Sprintf("el email %s ya está en uso", input.Email), nil)
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return models.Socio{}, err
	}

	socio := models.Socio{
		Nombre:          input.Nombre,
		Email:           input.Email,
		Password:        hashedPassword,
		Telefono:        input.Telefono,
		Estado:          constants.SocioPendiente,
		EstadoMembresia: constants.MembresiaPendiente,
		AsociacionID:    input.AsociacionID,
		CuotaMensual:    input.CuotaMensual,
		FechaAlta:       time.Now(),
	}

	if err := config.DB.Create(&socio).Error; err != nil {
		return socio, err
	}
	return socio, nil
}

// Login verifica credenciales contra socios, asociaciones y comercios
func Login(input dto.LoginRequest) (*dto.LoginResponse, error) {
	cta, err := buscarCuenta(input.Email)
	if err != nil {
		return nil, err
	}

	if !CheckPassword(cta.Password, input.Password) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidPassword, "contraseña incorrecta", nil)
	}

	token, err := GenerateToken(UserInfo{UserId: cta.ID, Role: cta.Rol}, TokenExpiryMinutos)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:  token,
		ID:     cta.ID,
		Nombre: cta.Nombre,
		Email:  cta.Email,
		Rol:    cta.Rol,
	}, nil
}

// VerifyGoogleIDToken valida el ID token emitido por Google
func VerifyGoogleIDToken(tokenId string) (*idtoken.Payload, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	payload, err := idtoken.Validate(context.Background(), tokenId, clientID)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// LoginGoogle inicia sesión con Google; si el email no existe crea el socio
func LoginGoogle(input dto.GoogleAuthRequest) (*dto.LoginResponse, error) {
	payload, err := VerifyGoogleIDToken(input.IDToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "token de Google inválido", err)
	}

	email, _ := payload.Claims["email"].(string)
	nombre, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidEmail, "el token de Google no trae email", nil)
	}

	socio, err := GetSocioByEmail(email)
	if err != nil {
		socio = models.Socio{
			Nombre:          nombre,
			Email:           email,
			Estado:          constants.SocioPendiente,
			EstadoMembresia: constants.MembresiaPendiente,
			FechaAlta:       time.Now(),
		}
		if err := config.DB.Create(&socio).Error; err != nil {
			return nil, err
		}
	}

	token, err := GenerateToken(UserInfo{UserId: socio.ID, Role: constants.RolSocio}, TokenExpiryMinutos)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:  token,
		ID:     socio.ID,
		Nombre: socio.Nombre,
		Email:  socio.Email,
		Rol:    constants.RolSocio,
	}, nil
}

// CambiarPassword cambia la contraseña de un socio verificando la actual
func CambiarPassword(socioID uint, input dto.CambiarPasswordRequest) error {
	var socio models.Socio
	if err := config.DB.First(&socio, socioID).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeUserNotFound, "socio no encontrado", err)
	}

	if !CheckPassword(socio.Password, input.PasswordActual) {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "la contraseña actual no coincide", nil)
	}

	hashed, err := HashPassword(input.PasswordNueva)
	if err != nil {
		return err
	}

	return config.DB.Model(&socio).Update("password", hashed).Error
}

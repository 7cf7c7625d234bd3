package services

import (
	"encoding/base64"
	"strings"

	"socios/errors"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// CodigoEscaneado es el contenido decodificado de un QR de comercio.
// BeneficioID es opcional: un QR de mostrador identifica sólo al comercio y
// el socio elige el beneficio en pantalla.
type CodigoEscaneado struct {
	ComercioID  uint  `json:"c"`
	BeneficioID *uint `json:"b,omitempty"`
}

// GenerarCodigoQR arma el payload que se imprime en el cartel o se muestra
// en la app del comercio.
func GenerarCodigoQR(comercioID uint, beneficioID *uint) (string, error) {
	payload := CodigoEscaneado{ComercioID: comercioID, BeneficioID: beneficioID}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// ParseCodigoQR decodifica un payload escaneado. Cualquier payload que no
// resuelva a un comercio es un código inválido: se rechaza antes de tocar
// la base y sin dejar registro de uso.
func ParseCodigoQR(payload string) (*CodigoEscaneado, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, errors.ErrCodigoInvalido
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.ErrCodigoInvalido
	}

	var codigo CodigoEscaneado
	if err := json.Unmarshal(data, &codigo); err != nil {
		return nil, errors.ErrCodigoInvalido
	}
	if codigo.ComercioID == 0 {
		return nil, errors.ErrCodigoInvalido
	}
	return &codigo, nil
}

// NuevoCodigoValidacion genera el identificador único de una validación
func NuevoCodigoValidacion() string {
	return uuid.NewString()
}

// NuevoTokenComercio genera el token de identidad QR de un comercio
func NuevoTokenComercio() string {
	return "COM-" + uuid.NewString()
}

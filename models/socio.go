package models

import (
	"fmt"
	"time"

	"socios/constants"
)

type Socio struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	Nombre          string     `gorm:"default:Nuevo Socio" json:"nombre"`
	Email           string     `gorm:"unique" json:"email"`
	Password        string     `json:"-"`
	Telefono        string     `gorm:"type:varchar(15)" json:"telefono"`
	DNI             string     `gorm:"type:varchar(12)" json:"dni"`
	Estado          string     `gorm:"default:pendiente" json:"estado"`
	EstadoMembresia string     `gorm:"default:pendiente" json:"estadoMembresia"`
	AsociacionID    *uint      `json:"asociacionId,omitempty"`
	Asociacion      *Asociacion `json:"asociacion,omitempty" gorm:"foreignKey:AsociacionID"`
	CuotaMensual    float64    `gorm:"default:0" json:"cuotaMensual"`
	FechaAlta       time.Time  `gorm:"autoCreateTime" json:"fechaAlta"`
	FechaUltimoPago *time.Time `json:"fechaUltimoPago,omitempty"`
	UltimoAcceso    *time.Time `json:"ultimoAcceso,omitempty"`
}

func (s *Socio) ValidateEstado() error {
	switch s.Estado {
	case constants.SocioActivo, constants.SocioInactivo, constants.SocioSuspendido,
		constants.SocioPendiente, constants.SocioVencido:
		return nil
	}
	return fmt.Errorf("estado de socio inválido: %s", s.Estado)
}

// MembresiaAlDia indica si el socio puede usar beneficios.
func (s *Socio) MembresiaAlDia() bool {
	return s.EstadoMembresia == constants.MembresiaAlDia
}

package models

import (
	"fmt"
	"time"

	"socios/constants"

	"github.com/lib/pq"
)

type Beneficio struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Titulo      string    `gorm:"not null" json:"titulo"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	Categoria   string    `json:"categoria"`

	TipoDescuento string  `gorm:"default:porcentaje" json:"tipoDescuento"`
	Descuento     float64 `json:"descuento"`

	FechaInicio time.Time `json:"fechaInicio"`
	FechaFin    time.Time `json:"fechaFin"`

	ComercioID uint      `gorm:"index;not null" json:"comercioId"`
	Comercio   *Comercio `json:"comercio,omitempty" gorm:"foreignKey:ComercioID"`

	// Asociaciones habilitadas para este beneficio; vacío = todas las vinculadas.
	Asociaciones pq.Int64Array `json:"asociaciones" gorm:"type:integer[]"`

	Estado string `gorm:"default:activo" json:"estado"`

	// UsosActuales es una proyección del historial de beneficio_usos; se puede
	// reconstruir con ReconciliarContadores.
	LimiteUsos   *int `json:"limiteUsos,omitempty"`
	UsosActuales int  `gorm:"default:0" json:"usosActuales"`
}

func (b *Beneficio) ValidateEstado() error {
	switch b.Estado {
	case constants.BeneficioActivo, constants.BeneficioInactivo,
		constants.BeneficioVencido, constants.BeneficioAgotado:
		return nil
	}
	return fmt.Errorf("estado de beneficio inválido: %s", b.Estado)
}

// VigenteEn informa si el beneficio puede usarse en el instante dado:
// activo, dentro de la ventana de vigencia y con cupo disponible.
func (b *Beneficio) VigenteEn(ahora time.Time) bool {
	if b.Estado != constants.BeneficioActivo {
		return false
	}
	if ahora.Before(b.FechaInicio) || ahora.After(b.FechaFin) {
		return false
	}
	if b.LimiteUsos != nil && b.UsosActuales >= *b.LimiteUsos {
		return false
	}
	return true
}

// AplicarDescuento calcula el monto descontado sobre un monto base.
func (b *Beneficio) AplicarDescuento(montoBase float64) float64 {
	if montoBase <= 0 {
		return 0
	}
	switch b.TipoDescuento {
	case constants.DescuentoMontoFijo:
		if b.Descuento > montoBase {
			return montoBase
		}
		return b.Descuento
	default:
		return montoBase * b.Descuento / 100
	}
}

// HabilitadoPara informa si el beneficio alcanza a la asociación dada.
// Lista vacía significa que vale para cualquier asociación vinculada.
func (b *Beneficio) HabilitadoPara(asociacionID uint) bool {
	if len(b.Asociaciones) == 0 {
		return true
	}
	for _, id := range b.Asociaciones {
		if uint(id) == asociacionID {
			return true
		}
	}
	return false
}

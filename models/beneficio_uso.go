package models

import "time"

// BeneficioUso es el registro inmutable de un intento de validación.
// Se crea exactamente una vez por intento (exitoso o fallido) y nunca se
// modifica: es la fuente de verdad de todas las estadísticas.
type BeneficioUso struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	SocioID      uint  `gorm:"index;not null" json:"socioId"`
	ComercioID   uint  `gorm:"index;not null" json:"comercioId"`
	BeneficioID  *uint `gorm:"index" json:"beneficioId,omitempty"`
	AsociacionID *uint `gorm:"index" json:"asociacionId,omitempty"`

	Fecha          time.Time `gorm:"index;not null" json:"fecha"`
	MontoDescuento float64   `gorm:"default:0" json:"montoDescuento"`
	Resultado      string    `gorm:"index;not null" json:"resultado"`
	Motivo         string    `json:"motivo,omitempty"`
	Codigo         string    `gorm:"uniqueIndex" json:"codigo"`

	Socio     *Socio     `json:"socio,omitempty" gorm:"foreignKey:SocioID"`
	Comercio  *Comercio  `json:"comercio,omitempty" gorm:"foreignKey:ComercioID"`
	Beneficio *Beneficio `json:"beneficio,omitempty" gorm:"foreignKey:BeneficioID"`
}

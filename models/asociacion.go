package models

import "time"

type Asociacion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Nombre      string    `gorm:"not null" json:"nombre"`
	Email       string    `gorm:"unique" json:"email"`
	Password    string    `json:"-"`
	Telefono    string    `json:"telefono"`
	Direccion   string    `json:"direccion"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	Logo        string    `json:"logo"`

	// Proyecciones agregadas; se recalculan desde socios y beneficio_usos,
	// nunca se usan como fuente de verdad.
	TotalSocios       int     `gorm:"default:0" json:"totalSocios"`
	SociosActivos     int     `gorm:"default:0" json:"sociosActivos"`
	IngresosEstimados float64 `gorm:"default:0" json:"ingresosEstimados"`

	Socios []Socio `json:"socios,omitempty" gorm:"foreignKey:AsociacionID"`
}

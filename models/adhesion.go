package models

import "time"

// Adhesion es el vínculo comercio-asociación. Un comercio puede adherirse a
// muchas asociaciones; cada vínculo pasa por el ciclo
// pendiente -> aprobada -> vinculada (o rechazada / desvinculada).
type Adhesion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	ComercioID   uint      `gorm:"index;not null" json:"comercioId"`
	AsociacionID uint      `gorm:"index;not null" json:"asociacionId"`
	Estado       string    `gorm:"default:pendiente" json:"estado"`

	Comercio   *Comercio   `json:"comercio,omitempty" gorm:"foreignKey:ComercioID"`
	Asociacion *Asociacion `json:"asociacion,omitempty" gorm:"foreignKey:AsociacionID"`
}

// Activa indica si la adhesión habilita validaciones de beneficios.
func (a *Adhesion) Activa() bool {
	return a.Estado == "aprobada" || a.Estado == "vinculada"
}

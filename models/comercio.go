package models

import "time"

type Comercio struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Nombre      string    `gorm:"not null" json:"nombre"`
	Email       string    `gorm:"unique" json:"email"`
	Password    string    `json:"-"`
	Telefono    string    `json:"telefono"`
	Direccion   string    `json:"direccion"`
	Categoria   string    `json:"categoria"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	Logo        string    `json:"logo"`

	// CodigoQR es el token de identidad estable que el comercio expone en su
	// cartel QR; los códigos escaneados se resuelven contra este valor.
	CodigoQR string `gorm:"uniqueIndex" json:"codigoQR"`

	Beneficios []Beneficio `json:"beneficios,omitempty" gorm:"foreignKey:ComercioID"`
	Adhesiones []Adhesion  `json:"adhesiones,omitempty" gorm:"foreignKey:ComercioID"`
}

package models

import (
	"time"

	"socios/constants"
)

type Notificacion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Titulo    string `gorm:"not null" json:"titulo"`
	Mensaje   string `gorm:"type:text;not null" json:"mensaje"`
	Tipo      string `gorm:"default:info" json:"tipo"`
	Prioridad string `gorm:"default:media" json:"prioridad"`
	Categoria string `json:"categoria"`
	Estado    string `gorm:"default:no_leida" json:"estado"`
	Enlace    string `json:"enlace,omitempty"`

	// Destinatarios: un socio puntual, toda una asociación, o global (ambos nil).
	SocioID      *uint `gorm:"index" json:"socioId,omitempty"`
	AsociacionID *uint `gorm:"index" json:"asociacionId,omitempty"`

	ExpiraEn *time.Time `json:"expiraEn,omitempty"`
}

// Vigente informa si la notificación todavía debe mostrarse.
func (n *Notificacion) Vigente(ahora time.Time) bool {
	return n.ExpiraEn == nil || ahora.Before(*n.ExpiraEn)
}

// PuedeTransicionar valida las transiciones de estado permitidas:
// las notificaciones sólo mutan entre no_leida/leida/archivada.
func (n *Notificacion) PuedeTransicionar(nuevo string) bool {
	switch nuevo {
	case constants.NotificacionNoLeida, constants.NotificacionLeida:
		return n.Estado != constants.NotificacionArchivada
	case constants.NotificacionArchivada:
		return true
	}
	return false
}

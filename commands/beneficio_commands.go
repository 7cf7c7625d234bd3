package commands

import (
	"socios/models"

	"gorm.io/gorm"
)

// BeneficioCommand define la interfaz de los comandos sobre beneficios
type BeneficioCommand interface {
	Execute() error
}

// CreateBeneficioCommand crea un beneficio nuevo
type CreateBeneficioCommand struct {
	beneficio *models.Beneficio
	db        *gorm.DB
}

func NewCreateBeneficioCommand(beneficio *models.Beneficio, db *gorm.DB) *CreateBeneficioCommand {
	return &CreateBeneficioCommand{
		beneficio: beneficio,
		db:        db,
	}
}

func (c *CreateBeneficioCommand) Execute() error {
	return c.db.Create(c.beneficio).Error
}

// UpdateBeneficioCommand actualiza un beneficio existente
type UpdateBeneficioCommand struct {
	beneficio *models.Beneficio
	db        *gorm.DB
}

func NewUpdateBeneficioCommand(beneficio *models.Beneficio, db *gorm.DB) *UpdateBeneficioCommand {
	return &UpdateBeneficioCommand{
		beneficio: beneficio,
		db:        db,
	}
}

func (c *UpdateBeneficioCommand) Execute() error {
	return c.db.Save(c.beneficio).Error
}

// DeleteBeneficioCommand borra un beneficio
type DeleteBeneficioCommand struct {
	beneficioID uint
	db          *gorm.DB
}

func NewDeleteBeneficioCommand(beneficioID uint, db *gorm.DB) *DeleteBeneficioCommand {
	return &DeleteBeneficioCommand{
		beneficioID: beneficioID,
		db:          db,
	}
}

func (c *DeleteBeneficioCommand) Execute() error {
	return c.db.Delete(&models.Beneficio{}, c.beneficioID).Error
}

package models

import (
	"errors"

	"socios/constants"
)

// AdhesionState define la interfaz de los estados de una adhesión
type AdhesionState interface {
	Aprobar(adhesion *Adhesion) error
	Rechazar(adhesion *Adhesion) error
	Vincular(adhesion *Adhesion) error
	Desvincular(adhesion *Adhesion) error
}

// PendienteState adhesión solicitada, a la espera de la asociación
type PendienteState struct{}

func (s *PendienteState) Aprobar(adhesion *Adhesion) error {
	adhesion.Estado = constants.AdhesionAprobada
	return nil
}

func (s *PendienteState) Rechazar(adhesion *Adhesion) error {
	adhesion.Estado = constants.AdhesionRechazada
	return nil
}

func (s *PendienteState) Vincular(adhesion *Adhesion) error {
	return errors.New("la adhesión todavía no fue aprobada")
}

func (s *PendienteState) Desvincular(adhesion *Adhesion) error {
	return errors.New("la adhesión todavía no fue vinculada")
}

// AprobadaState adhesión aprobada, pendiente de vinculación efectiva
type AprobadaState struct{}

func (s *AprobadaState) Aprobar(adhesion *Adhesion) error {
	return errors.New("la adhesión ya fue aprobada")
}

func (s *AprobadaState) Rechazar(adhesion *Adhesion) error {
	adhesion.Estado = constants.AdhesionRechazada
	return nil
}

func (s *AprobadaState) Vincular(adhesion *Adhesion) error {
	adhesion.Estado = constants.AdhesionVinculada
	return nil
}

func (s *AprobadaState) Desvincular(adhesion *Adhesion) error {
	adhesion.Estado = constants.AdhesionDesvinculada
	return nil
}

// RechazadaState adhesión rechazada por la asociación
type RechazadaState struct{}

func (s *RechazadaState) Aprobar(adhesion *Adhesion) error {
	return errors.New("no se puede aprobar una adhesión rechazada")
}

func (s *RechazadaState) Rechazar(adhesion *Adhesion) error {
	return errors.New("la adhesión ya fue rechazada")
}

func (s *RechazadaState) Vincular(adhesion *Adhesion) error {
	return errors.New("no se puede vincular una adhesión rechazada")
}

func (s *RechazadaState) Desvincular(adhesion *Adhesion) error {
	return errors.New("no se puede desvincular una adhesión rechazada")
}

// VinculadaState adhesión activa
type VinculadaState struct{}

func (s *VinculadaState) Aprobar(adhesion *Adhesion) error {
	return errors.New("la adhesión ya está vinculada")
}

func (s *VinculadaState) Rechazar(adhesion *Adhesion) error {
	return errors.New("no se puede rechazar una adhesión vinculada")
}

func (s *VinculadaState) Vincular(adhesion *Adhesion) error {
	return errors.New("la adhesión ya está vinculada")
}

func (s *VinculadaState) Desvincular(adhesion *Adhesion) error {
	adhesion.Estado = constants.AdhesionDesvinculada
	return nil
}

// DesvinculadaState vínculo dado de baja; puede volver a solicitarse
type DesvinculadaState struct{}

func (s *DesvinculadaState) Aprobar(adhesion *Adhesion) error {
	return errors.New("la adhesión fue desvinculada; debe solicitarse de nuevo")
}

func (s *DesvinculadaState) Rechazar(adhesion *Adhesion) error {
	return errors.New("la adhesión ya fue desvinculada")
}

func (s *DesvinculadaState) Vincular(adhesion *Adhesion) error {
	adhesion.Estado = constants.AdhesionVinculada
	return nil
}

func (s *DesvinculadaState) Desvincular(adhesion *Adhesion) error {
	return errors.New("la adhesión ya fue desvinculada")
}

// GetAdhesionState devuelve el state correspondiente al estado actual
func GetAdhesionState(estado string) AdhesionState {
	switch estado {
	case constants.AdhesionAprobada:
		return &AprobadaState{}
	case constants.AdhesionRechazada:
		return &RechazadaState{}
	case constants.AdhesionVinculada:
		return &VinculadaState{}
	case constants.AdhesionDesvinculada:
		return &DesvinculadaState{}
	default:
		return &PendienteState{}
	}
}

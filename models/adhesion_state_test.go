package models

import (
	"testing"

	"socios/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdhesion_CicloCompleto(t *testing.T) {
	adhesion := &Adhesion{Estado: constants.AdhesionPendiente}

	require.NoError(t, GetAdhesionState(adhesion.Estado).Aprobar(adhesion))
	assert.Equal(t, constants.AdhesionAprobada, adhesion.Estado)

	require.NoError(t, GetAdhesionState(adhesion.Estado).Vincular(adhesion))
	assert.Equal(t, constants.AdhesionVinculada, adhesion.Estado)
	assert.True(t, adhesion.Activa())

	require.NoError(t, GetAdhesionState(adhesion.Estado).Desvincular(adhesion))
	assert.Equal(t, constants.AdhesionDesvinculada, adhesion.Estado)
	assert.False(t, adhesion.Activa())

	// Un vínculo dado de baja puede revincularse sin pasar por pendiente
	require.NoError(t, GetAdhesionState(adhesion.Estado).Vincular(adhesion))
	assert.Equal(t, constants.AdhesionVinculada, adhesion.Estado)
}

func TestAdhesion_TransicionesInvalidas(t *testing.T) {
	tests := []struct {
		name   string
		estado string
		accion func(AdhesionState, *Adhesion) error
	}{
		{"vincular pendiente", constants.AdhesionPendiente, AdhesionState.Vincular},
		{"desvincular pendiente", constants.AdhesionPendiente, AdhesionState.Desvincular},
		{"aprobar rechazada", constants.AdhesionRechazada, AdhesionState.Aprobar},
		{"vincular rechazada", constants.AdhesionRechazada, AdhesionState.Vincular},
		{"rechazar vinculada", constants.AdhesionVinculada, AdhesionState.Rechazar},
		{"aprobar desvinculada", constants.AdhesionDesvinculada, AdhesionState.Aprobar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adhesion := &Adhesion{Estado: tt.estado}
			err := tt.accion(GetAdhesionState(tt.estado), adhesion)
			assert.Error(t, err)
			assert.Equal(t, tt.estado, adhesion.Estado, "una transición inválida no muta el estado")
		})
	}
}

func TestAdhesion_AprobadaHabilitaValidaciones(t *testing.T) {
	aprobada := &Adhesion{Estado: constants.AdhesionAprobada}
	assert.True(t, aprobada.Activa(), "aprobada ya habilita canjes aunque falte la vinculación efectiva")

	pendiente := &Adhesion{Estado: constants.AdhesionPendiente}
	assert.False(t, pendiente.Activa())
}

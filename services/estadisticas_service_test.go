package services

import (
	"testing"
	"time"

	"socios/constants"
	"socios/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uso(socioID, comercioID uint, beneficioID *uint, resultado string, fecha time.Time) models.BeneficioUso {
	asociacion := uint(1)
	return models.BeneficioUso{
		SocioID:      socioID,
		ComercioID:   comercioID,
		BeneficioID:  beneficioID,
		AsociacionID: &asociacion,
		Resultado:    resultado,
		Fecha:        fecha,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestResumenValidaciones_Vacio(t *testing.T) {
	desde := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	resumen := ResumenValidaciones(nil, desde, hasta)

	assert.Equal(t, 0, resumen.Total)
	assert.Equal(t, float64(0), resumen.TasaExito, "la tasa de éxito de un conjunto vacío es 0")
	assert.Equal(t, float64(0), resumen.PromedioDiario)
	assert.Nil(t, resumen.BeneficioMasUsado)
}

func TestResumenValidaciones_TasaYUnicos(t *testing.T) {
	dia := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	usos := []models.BeneficioUso{
		uso(1, 1, uintPtr(10), constants.ValidacionExitosa, dia),
		uso(2, 1, uintPtr(10), constants.ValidacionExitosa, dia),
		uso(1, 2, uintPtr(11), constants.ValidacionFallida, dia),
		uso(3, 2, uintPtr(10), constants.ValidacionExitosa, dia),
	}

	resumen := ResumenValidaciones(usos, dia, dia.AddDate(0, 0, 1))

	assert.Equal(t, 4, resumen.Total)
	assert.Equal(t, 3, resumen.Exitosas)
	assert.Equal(t, 1, resumen.Fallidas)
	assert.InDelta(t, 75.0, resumen.TasaExito, 0.001)
	assert.GreaterOrEqual(t, resumen.TasaExito, 0.0)
	assert.LessOrEqual(t, resumen.TasaExito, 100.0)
	assert.Equal(t, 3, resumen.SociosUnicos)
	assert.Equal(t, 2, resumen.ComerciosUnicos)
	assert.Equal(t, 1, resumen.AsociacionesUnicas)
	assert.InDelta(t, 2.0, resumen.PromedioDiario, 0.001, "4 usos en 2 días")

	require.NotNil(t, resumen.BeneficioMasUsado)
	assert.Equal(t, uint(10), *resumen.BeneficioMasUsado)
	assert.Equal(t, 3, resumen.UsosBeneficioTop)
}

func TestResumenValidaciones_EmpateGanaPrimeroEncontrado(t *testing.T) {
	dia := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	// Orden fecha-descendente simulado: el beneficio 20 aparece primero
	usos := []models.BeneficioUso{
		uso(1, 1, uintPtr(20), constants.ValidacionExitosa, dia),
		uso(2, 1, uintPtr(30), constants.ValidacionExitosa, dia),
		uso(3, 1, uintPtr(20), constants.ValidacionExitosa, dia),
		uso(4, 1, uintPtr(30), constants.ValidacionExitosa, dia),
	}

	resumen := ResumenValidaciones(usos, dia, dia)

	require.NotNil(t, resumen.BeneficioMasUsado)
	assert.Equal(t, uint(20), *resumen.BeneficioMasUsado)
	assert.Equal(t, 2, resumen.UsosBeneficioTop)
}

func TestBucketsDiarios_RellenaDiasSinActividad(t *testing.T) {
	desde := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	usos := []models.BeneficioUso{
		uso(1, 1, uintPtr(10), constants.ValidacionExitosa, desde.Add(9*time.Hour)),
		uso(2, 1, uintPtr(10), constants.ValidacionFallida, desde.Add(11*time.Hour)),
		uso(3, 1, uintPtr(10), constants.ValidacionExitosa, hasta.Add(15*time.Hour)),
	}

	buckets := BucketsDiarios(usos, desde, hasta)

	require.Len(t, buckets, 3, "un bucket por día calendario, inclusive")

	assert.Equal(t, "2026-03-01", buckets[0].Fecha)
	assert.Equal(t, 2, buckets[0].Total)
	assert.Equal(t, 1, buckets[0].Exitosas)
	assert.Equal(t, 1, buckets[0].Fallidas)

	assert.Equal(t, "2026-03-02", buckets[1].Fecha)
	assert.Equal(t, 0, buckets[1].Total, "el día sin actividad aparece con contadores en cero")

	assert.Equal(t, "2026-03-03", buckets[2].Fecha)
	assert.Equal(t, 1, buckets[2].Total)
}

func TestBucketsDiarios_RangoInvertido(t *testing.T) {
	desde := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, BucketsDiarios(nil, desde, hasta))
}

func TestBucketsPorHora(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	usos := []models.BeneficioUso{
		uso(1, 1, nil, constants.ValidacionExitosa, base.Add(9*time.Hour)),
		uso(2, 1, nil, constants.ValidacionExitosa, base.Add(9*time.Hour+30*time.Minute)),
		// otra fecha, misma hora local
		uso(3, 1, nil, constants.ValidacionExitosa, base.AddDate(0, 0, 5).Add(9*time.Hour)),
		uso(4, 1, nil, constants.ValidacionExitosa, base.Add(23*time.Hour)),
	}

	buckets := BucketsPorHora(usos)

	require.Len(t, buckets, 24)
	assert.Equal(t, 3, buckets[9].Total, "cuenta ocurrencias por hora sin importar la fecha")
	assert.Equal(t, 1, buckets[23].Total)
	assert.Equal(t, 0, buckets[0].Total)
}

func TestCrecimientoMensual(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		anterior int
		want     float64
	}{
		{"sin historial previo y con actividad", 5, 0, 100},
		{"sin historial previo y sin actividad", 0, 0, 0},
		{"caída a la mitad", 5, 10, -50},
		{"crecimiento al doble", 10, 5, 100},
		{"sin cambios", 7, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CrecimientoMensual(tt.actual, tt.anterior), 0.001)
		})
	}
}

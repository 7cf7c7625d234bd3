package services

import (
	"testing"
	"time"

	"socios/constants"
	"socios/dto"
	"socios/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beneficioVigente(id uint, titulo, categoria string) models.Beneficio {
	return models.Beneficio{
		ID:          id,
		Titulo:      titulo,
		Descripcion: "Descuento exclusivo para socios",
		Categoria:   categoria,
		Estado:      constants.BeneficioActivo,
		FechaInicio: time.Now().AddDate(0, 0, -7),
		FechaFin:    time.Now().AddDate(0, 0, 7),
	}
}

func TestFiltrarVigentes(t *testing.T) {
	ahora := time.Now()
	limite := 5

	vencido := beneficioVigente(2, "Vencido", "")
	vencido.FechaFin = ahora.AddDate(0, 0, -1)

	futuro := beneficioVigente(3, "Futuro", "")
	futuro.FechaInicio = ahora.AddDate(0, 0, 1)
	futuro.FechaFin = ahora.AddDate(0, 0, 10)

	inactivo := beneficioVigente(4, "Inactivo", "")
	inactivo.Estado = constants.BeneficioInactivo

	agotado := beneficioVigente(5, "Agotado", "")
	agotado.LimiteUsos = &limite
	agotado.UsosActuales = 5

	conCupo := beneficioVigente(6, "Con cupo", "")
	conCupo.LimiteUsos = &limite
	conCupo.UsosActuales = 4

	beneficios := []models.Beneficio{
		beneficioVigente(1, "Válido", ""),
		vencido, futuro, inactivo, agotado, conCupo,
	}

	vigentes := filtrarVigentes(beneficios, ahora)

	require.Len(t, vigentes, 2)
	assert.Equal(t, uint(1), vigentes[0].ID)
	assert.Equal(t, uint(6), vigentes[1].ID, "el límite excluye recién al alcanzarse")
}

func TestFiltrarPorAsociacion(t *testing.T) {
	abierto := beneficioVigente(1, "Para todas", "")

	restringido := beneficioVigente(2, "Sólo club norte", "")
	restringido.Asociaciones = pq.Int64Array{7, 9}

	beneficios := []models.Beneficio{abierto, restringido}

	delSiete := filtrarPorAsociacion(beneficios, 7)
	require.Len(t, delSiete, 2, "lista vacía habilita a cualquier asociación")

	delOcho := filtrarPorAsociacion(beneficios, 8)
	require.Len(t, delOcho, 1)
	assert.Equal(t, uint(1), delOcho[0].ID)
}

func TestBuscarEnMemoria_SubstringInsensibleAAcentos(t *testing.T) {
	beneficios := []models.Beneficio{
		beneficioVigente(1, "Café con medialunas", "gastronomía"),
		beneficioVigente(2, "Corte de pelo", "peluquería"),
		beneficioVigente(3, "2x1 en cafetería", "gastronomía"),
	}

	resultado := buscarEnMemoria(beneficios, "cafe")

	require.Len(t, resultado, 2)
	assert.Equal(t, uint(1), resultado[0].ID)
	assert.Equal(t, uint(3), resultado[1].ID)
}

func TestBuscarEnMemoria_TerminoVacioDevuelveTodo(t *testing.T) {
	beneficios := []models.Beneficio{
		beneficioVigente(1, "A", ""),
		beneficioVigente(2, "B", ""),
	}
	assert.Len(t, buscarEnMemoria(beneficios, ""), 2)
	assert.Len(t, buscarEnMemoria(beneficios, "   "), 2)
}

func TestBuscarEnMemoria_SinCoincidencias(t *testing.T) {
	beneficios := []models.Beneficio{
		beneficioVigente(1, "Corte de pelo", "peluquería"),
	}
	assert.Empty(t, buscarEnMemoria(beneficios, "ferretería industrial"))
}

func TestValidarFiltros(t *testing.T) {
	assert.NoError(t, validarFiltros(dto.FiltrosBeneficio{}))
	assert.NoError(t, validarFiltros(dto.FiltrosBeneficio{Estado: constants.BeneficioActivo}))
	assert.Error(t, validarFiltros(dto.FiltrosBeneficio{Estado: "cualquiera"}), "un estado desconocido se rechaza antes de consultar")
}

func TestNormalizar(t *testing.T) {
	assert.Equal(t, "cafeteria", normalizar("  CAFETERÍA "))
	assert.Equal(t, "nino", normalizar("Niño"), "unidecode colapsa la ñ")
}

func TestSimilitud(t *testing.T) {
	assert.InDelta(t, 1.0, similitud("cafe", "cafe"), 0.001)
	assert.InDelta(t, 1.0, similitud("", ""), 0.001)
	assert.Greater(t, similitud("cafeteria", "cafetería"), 0.8)
	assert.Less(t, similitud("cafe", "zapateria"), 0.4)
}

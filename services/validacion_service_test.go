package services

import (
	"testing"
	"time"

	"socios/constants"
	"socios/errors"
	"socios/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func socioDePrueba(estado, membresia string, asociacionID *uint, ultimoPago *time.Time) *models.Socio {
	return &models.Socio{
		ID:              1,
		Nombre:          "Ana",
		Estado:          estado,
		EstadoMembresia: membresia,
		AsociacionID:    asociacionID,
		FechaAlta:       time.Now().AddDate(0, -6, 0),
		FechaUltimoPago: ultimoPago,
	}
}

func beneficioDePrueba(estado string, limite *int, usos int) *models.Beneficio {
	return &models.Beneficio{
		ID:           10,
		Titulo:       "2x1 en café",
		Estado:       estado,
		FechaInicio:  time.Now().AddDate(0, 0, -7),
		FechaFin:     time.Now().AddDate(0, 0, 7),
		ComercioID:   5,
		LimiteUsos:   limite,
		UsosActuales: usos,
	}
}

func TestEvaluarChecks_OrdenDePrecedencia(t *testing.T) {
	ahora := time.Now()
	asociacion := uint(1)
	pagoViejo := ahora.AddDate(0, -3, 0)
	pagoReciente := ahora.AddDate(0, 0, -5)
	comercio := &models.Comercio{ID: 5, Nombre: "Café Central"}
	agotado := beneficioDePrueba(constants.BeneficioActivo, intPtr(3), 3)

	tests := []struct {
		name      string
		socio     *models.Socio
		comercio  *models.Comercio
		vinculado bool
		roto      bool
		beneficio *models.Beneficio
		want      string
	}{
		{
			// Un socio suspendido con todo lo demás mal igual recibe
			// no_autorizado: el primer chequeo que falla manda.
			name:      "suspendido gana sobre membresía vencida y comercio desvinculado",
			socio:     socioDePrueba(constants.SocioSuspendido, constants.MembresiaVencida, &asociacion, &pagoViejo),
			comercio:  nil,
			beneficio: agotado,
			want:      constants.MotivoNoAutorizado,
		},
		{
			name:      "membresía vencida gana sobre comercio desvinculado",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaVencida, &asociacion, &pagoViejo),
			comercio:  comercio,
			vinculado: false,
			beneficio: agotado,
			want:      constants.MotivoMembresiaVencida,
		},
		{
			name:      "membresía vencida manda aunque el beneficio sea válido",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaVencida, &asociacion, &pagoViejo),
			comercio:  comercio,
			vinculado: true,
			beneficio: beneficioDePrueba(constants.BeneficioActivo, nil, 0),
			want:      constants.MotivoMembresiaVencida,
		},
		{
			name:      "comercio inexistente",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, &asociacion, &pagoReciente),
			comercio:  nil,
			beneficio: nil,
			want:      constants.MotivoComercioNoVinculado,
		},
		{
			name:      "comercio no vinculado gana sobre beneficio agotado",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, &asociacion, &pagoReciente),
			comercio:  comercio,
			vinculado: false,
			beneficio: agotado,
			want:      constants.MotivoComercioNoVinculado,
		},
		{
			name:      "beneficio agotado",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, &asociacion, &pagoReciente),
			comercio:  comercio,
			vinculado: true,
			beneficio: agotado,
			want:      constants.MotivoBeneficioNoDisponible,
		},
		{
			name:      "todo en orden",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, &asociacion, &pagoReciente),
			comercio:  comercio,
			vinculado: true,
			beneficio: beneficioDePrueba(constants.BeneficioActivo, intPtr(3), 2),
			want:      "",
		},
		{
			name:      "escaneo de mostrador sin beneficio puntual",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, &asociacion, &pagoReciente),
			comercio:  comercio,
			vinculado: true,
			beneficio: nil,
			want:      "",
		},
		{
			name:      "socio sin asociación canjea en cualquier comercio",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, nil, &pagoReciente),
			comercio:  comercio,
			vinculado: false,
			beneficio: nil,
			want:      "",
		},
		{
			name:      "socio pendiente de aprobación con membresía al día canjea",
			socio:     socioDePrueba(constants.SocioPendiente, constants.MembresiaAlDia, &asociacion, &pagoReciente),
			comercio:  comercio,
			vinculado: true,
			beneficio: nil,
			want:      "",
		},
		{
			// Una referencia rota a un beneficio no puede adelantar el motivo:
			// el socio suspendido sigue recibiendo no_autorizado.
			name:      "suspendido gana sobre referencia rota de beneficio",
			socio:     socioDePrueba(constants.SocioSuspendido, constants.MembresiaVencida, &asociacion, &pagoViejo),
			comercio:  comercio,
			vinculado: true,
			roto:      true,
			want:      constants.MotivoNoAutorizado,
		},
		{
			name:      "membresía vencida gana sobre referencia rota de beneficio",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaVencida, &asociacion, &pagoViejo),
			comercio:  comercio,
			vinculado: true,
			roto:      true,
			want:      constants.MotivoMembresiaVencida,
		},
		{
			name:      "referencia rota con todo lo demás en orden",
			socio:     socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, &asociacion, &pagoReciente),
			comercio:  comercio,
			vinculado: true,
			roto:      true,
			want:      constants.MotivoBeneficioNoDisponible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluarChecks(tt.socio, tt.comercio, tt.vinculado, true, tt.roto, tt.beneficio, ahora)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluarChecks_MembresiaEnGraciaPuedeCanjear(t *testing.T) {
	ahora := time.Now()
	asociacion := uint(1)
	// 35 días desde el pago: fuera de cobertura pero dentro de la gracia
	pago := ahora.AddDate(0, 0, -35)
	socio := socioDePrueba(constants.SocioActivo, constants.MembresiaPendiente, &asociacion, &pago)
	comercio := &models.Comercio{ID: 5}

	got := evaluarChecks(socio, comercio, true, true, false, nil, ahora)
	assert.Empty(t, got, "el período de gracia no bloquea el canje")
}

func TestEvaluarChecks_NoAfiliadosProhibidos(t *testing.T) {
	ahora := time.Now()
	pago := ahora.AddDate(0, 0, -5)
	socio := socioDePrueba(constants.SocioActivo, constants.MembresiaAlDia, nil, &pago)
	comercio := &models.Comercio{ID: 5}

	got := evaluarChecks(socio, comercio, false, false, false, nil, ahora)
	assert.Equal(t, constants.MotivoComercioNoVinculado, got)
}

func TestParseCodigoQR(t *testing.T) {
	beneficio := uint(7)

	payload, err := GenerarCodigoQR(5, &beneficio)
	require.NoError(t, err)

	codigo, err := ParseCodigoQR(payload)
	require.NoError(t, err)
	assert.Equal(t, uint(5), codigo.ComercioID)
	require.NotNil(t, codigo.BeneficioID)
	assert.Equal(t, beneficio, *codigo.BeneficioID)
}

func TestParseCodigoQR_SinBeneficio(t *testing.T) {
	payload, err := GenerarCodigoQR(5, nil)
	require.NoError(t, err)

	codigo, err := ParseCodigoQR(payload)
	require.NoError(t, err)
	assert.Nil(t, codigo.BeneficioID)
}

func TestParseCodigoQR_Malformado(t *testing.T) {
	casos := []string{
		"",
		"   ",
		"no-es-base64-%%%",
		"bm8gZXMganNvbg",   // base64 válido, contenido no JSON
		"e30",              // JSON vacío, sin comercio
		"eyJjIjowfQ",       // comercio 0
	}

	for _, payload := range casos {
		codigo, err := ParseCodigoQR(payload)
		assert.Nil(t, codigo)
		assert.ErrorIs(t, err, errors.ErrCodigoInvalido, "payload %q", payload)
	}
}

func TestAplicarDescuento(t *testing.T) {
	porcentaje := &models.Beneficio{TipoDescuento: constants.DescuentoPorcentaje, Descuento: 20}
	fijo := &models.Beneficio{TipoDescuento: constants.DescuentoMontoFijo, Descuento: 500}

	assert.InDelta(t, 200.0, porcentaje.AplicarDescuento(1000), 0.001)
	assert.InDelta(t, 500.0, fijo.AplicarDescuento(1000), 0.001)
	assert.InDelta(t, 300.0, fijo.AplicarDescuento(300), 0.001, "el monto fijo no supera el monto base")
	assert.Zero(t, porcentaje.AplicarDescuento(0))
	assert.Zero(t, porcentaje.AplicarDescuento(-50))
}

func intPtr(v int) *int { return &v }

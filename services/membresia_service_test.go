package services

import (
	"testing"
	"time"

	"socios/constants"
	"socios/models"

	"github.com/stretchr/testify/assert"
)

func TestCalcularEstadoMembresia(t *testing.T) {
	ahora := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	pagoHace := func(dias int) *time.Time {
		fecha := ahora.AddDate(0, 0, -dias)
		return &fecha
	}

	tests := []struct {
		name       string
		ultimoPago *time.Time
		alta       time.Time
		want       string
	}{
		{"pago reciente", pagoHace(5), ahora.AddDate(-1, 0, 0), constants.MembresiaAlDia},
		{"justo antes de vencer la cobertura", pagoHace(29), ahora.AddDate(-1, 0, 0), constants.MembresiaAlDia},
		{"cobertura vencida, dentro de la gracia", pagoHace(30), ahora.AddDate(-1, 0, 0), constants.MembresiaPendiente},
		{"último día de gracia", pagoHace(39), ahora.AddDate(-1, 0, 0), constants.MembresiaPendiente},
		{"gracia agotada", pagoHace(40), ahora.AddDate(-1, 0, 0), constants.MembresiaVencida},
		{"nunca pagó, alta reciente", nil, ahora.AddDate(0, 0, -10), constants.MembresiaPendiente},
		{"nunca pagó, alta vieja", nil, ahora.AddDate(0, 0, -45), constants.MembresiaVencida},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			socio := &models.Socio{FechaAlta: tt.alta, FechaUltimoPago: tt.ultimoPago}
			assert.Equal(t, tt.want, CalcularEstadoMembresia(socio, ahora))
		})
	}
}

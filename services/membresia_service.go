package services

import (
	"context"
	"time"

	"socios/constants"
	"socios/models"
	"socios/services/logger"

	"gorm.io/gorm"
)

const (
	// Una cuota cubre 30 días; después corren 10 días de gracia en estado
	// pendiente antes de pasar a vencido.
	DiasCobertura = 30
	DiasGracia    = 10
)

// MembresiaService deriva el estado de membresía desde las fechas de pago.
// El estado nunca se edita a mano: se recalcula cada vez que entra un pago
// o avanza el tiempo (cron diario).
type MembresiaService struct {
	db     *gorm.DB
	logger logger.Logger
}

type MembresiaServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewMembresiaService(opts MembresiaServiceOptions) *MembresiaService {
	return &MembresiaService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

// CalcularEstadoMembresia deriva el estado a partir del último pago.
// Sin pagos registrados el socio arranca pendiente y vence a los
// DiasCobertura+DiasGracia días del alta.
func CalcularEstadoMembresia(socio *models.Socio, ahora time.Time) string {
	referencia := socio.FechaAlta
	pagoAlguno := socio.FechaUltimoPago != nil
	if pagoAlguno {
		referencia = *socio.FechaUltimoPago
	}

	transcurridos := int(ahora.Sub(referencia).Hours() / 24)

	if pagoAlguno && transcurridos < DiasCobertura {
		return constants.MembresiaAlDia
	}
	if transcurridos < DiasCobertura+DiasGracia {
		return constants.MembresiaPendiente
	}
	return constants.MembresiaVencida
}

// RegistrarPago asienta el pago de cuota y re-deriva el estado del socio
func (s *MembresiaService) RegistrarPago(ctx context.Context, socioID uint, monto float64, fecha time.Time) (*models.Socio, error) {
	var socio models.Socio
	if err := s.db.WithContext(ctx).First(&socio, socioID).Error; err != nil {
		return nil, err
	}

	socio.FechaUltimoPago = &fecha
	socio.EstadoMembresia = CalcularEstadoMembresia(&socio, time.Now())
	if socio.Estado == constants.SocioPendiente || socio.Estado == constants.SocioVencido {
		socio.Estado = constants.SocioActivo
	}

	if err := s.db.WithContext(ctx).Model(&socio).
		Updates(map[string]interface{}{
			"fecha_ultimo_pago": socio.FechaUltimoPago,
			"estado_membresia":  socio.EstadoMembresia,
			"estado":            socio.Estado,
		}).Error; err != nil {
		return nil, err
	}

	s.logger.Info("pago registrado para socio %d: %.2f", socioID, monto)
	return &socio, nil
}

// RecalcularMembresias re-deriva el estado de todos los socios. Lo corre el
// cron diario para que el paso del tiempo también mueva los estados.
func (s *MembresiaService) RecalcularMembresias(ctx context.Context) (int, error) {
	var socios []models.Socio
	if err := s.db.WithContext(ctx).Find(&socios).Error; err != nil {
		return 0, err
	}

	ahora := time.Now()
	actualizados := 0
	for i := range socios {
		socio := &socios[i]
		estado := CalcularEstadoMembresia(socio, ahora)
		if estado == socio.EstadoMembresia {
			continue
		}
		if err := s.db.WithContext(ctx).Model(socio).
			Update("estado_membresia", estado).Error; err != nil {
			s.logger.Error("no se pudo recalcular la membresía del socio %d: %v", socio.ID, err)
			continue
		}
		actualizados++
	}

	return actualizados, nil
}

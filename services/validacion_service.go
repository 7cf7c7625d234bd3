package services

import (
	"context"
	"time"

	"socios/constants"
	"socios/dto"
	"socios/errors"
	"socios/models"
	"socios/services/logger"

	"gorm.io/gorm"
)

// Fases internas del pipeline de validación. Cada escaneo recorre
// parseo -> chequeos -> commit y termina en exitosa o fallida.
const (
	faseParseo   = "parseo"
	faseChequeos = "chequeos"
	faseCommit   = "commit"
)

// CanalValidaciones es el canal pub/sub donde se anuncian las validaciones
const CanalValidaciones = "validaciones"

// ValidacionService corre el flujo completo de canje de un beneficio:
// decodifica el código escaneado, evalúa los chequeos de elegibilidad en
// orden fijo y asienta el resultado.
type ValidacionService struct {
	db         *gorm.DB
	cache      *CacheService
	publicador *Publicador
	logger     logger.Logger

	permitirNoAfiliados bool
}

type ValidacionServiceOptions struct {
	DB         *gorm.DB
	Cache      *CacheService
	Publicador *Publicador
	Logger     logger.Logger

	// ProhibirNoAfiliados exige que el socio tenga asociación para canjear.
	// Por defecto un socio sin asociación puede canjear en cualquier comercio.
	ProhibirNoAfiliados bool
}

func NewValidacionService(opts ValidacionServiceOptions) *ValidacionService {
	return &ValidacionService{
		db:                  opts.DB,
		cache:               opts.Cache,
		publicador:          opts.Publicador,
		logger:              opts.Logger,
		permitirNoAfiliados: !opts.ProhibirNoAfiliados,
	}
}

// evaluarChecks corre los chequeos de elegibilidad en orden fijo y devuelve
// el motivo del primer chequeo que falla, o cadena vacía si pasan todos.
// El orden es contrato: un socio suspendido con membresía vencida siempre
// recibe no_autorizado, nunca membresia_vencida.
func evaluarChecks(socio *models.Socio, comercio *models.Comercio, vinculado, permitirNoAfiliados, beneficioRoto bool, beneficio *models.Beneficio, ahora time.Time) string {
	if socio == nil || socio.Estado == constants.SocioSuspendido || socio.Estado == constants.SocioInactivo {
		return constants.MotivoNoAutorizado
	}
	if CalcularEstadoMembresia(socio, ahora) == constants.MembresiaVencida {
		return constants.MotivoMembresiaVencida
	}
	if comercio == nil {
		return constants.MotivoComercioNoVinculado
	}
	// Un socio sin asociación puede canjear en cualquier comercio, salvo
	// que el despliegue lo prohíba
	if socio.AsociacionID == nil && !permitirNoAfiliados {
		return constants.MotivoComercioNoVinculado
	}
	if socio.AsociacionID != nil && !vinculado {
		return constants.MotivoComercioNoVinculado
	}
	if beneficioRoto {
		return constants.MotivoBeneficioNoDisponible
	}
	if beneficio != nil && (!beneficio.VigenteEn(ahora) || (socio.AsociacionID != nil && !beneficio.HabilitadoPara(*socio.AsociacionID))) {
		return constants.MotivoBeneficioNoDisponible
	}
	return ""
}

// Validar procesa un código escaneado de punta a punta. Los rechazos de
// negocio NO son errores: vuelven como resultado fallida con su motivo y
// quedan asentados para auditoría. Sólo los fallos de infraestructura
// devuelven error.
func (s *ValidacionService) Validar(ctx context.Context, socioID uint, req dto.ValidarCodigoRequest) (*dto.ResultadoValidacionResponse, error) {
	// Parseo: un payload ilegible se rechaza sin tocar la base y sin
	// registro de uso.
	escaneado, err := ParseCodigoQR(req.Payload)
	if err != nil {
		s.logger.Info("validación abortada en %s: %v", faseParseo, err)
		return &dto.ResultadoValidacionResponse{
			Estado: constants.ValidacionFallida,
			Motivo: constants.MotivoCodigoInvalido,
		}, nil
	}

	var socio models.Socio
	if err := s.db.WithContext(ctx).First(&socio, socioID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &dto.ResultadoValidacionResponse{
				Estado: constants.ValidacionFallida,
				Motivo: constants.MotivoNoAutorizado,
			}, nil
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "no se pudo cargar el socio", err)
	}

	var comercio *models.Comercio
	var encontrado models.Comercio
	if err := s.db.WithContext(ctx).First(&encontrado, escaneado.ComercioID).Error; err == nil {
		comercio = &encontrado
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "no se pudo cargar el comercio", err)
	}

	vinculado := false
	if comercio != nil && socio.AsociacionID != nil {
		var cuenta int64
		err := s.db.WithContext(ctx).Model(&models.Adhesion{}).
			Where("comercio_id = ? AND asociacion_id = ? AND estado IN ?",
				comercio.ID, *socio.AsociacionID,
				[]string{constants.AdhesionAprobada, constants.AdhesionVinculada}).
			Count(&cuenta).Error
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "no se pudo verificar la adhesión", err)
		}
		vinculado = cuenta > 0
	}

	// El beneficio del request tiene prioridad sobre el incrustado en el QR
	beneficioID := escaneado.BeneficioID
	if req.BeneficioID != nil {
		beneficioID = req.BeneficioID
	}

	var beneficio *models.Beneficio
	beneficioRoto := false
	if beneficioID != nil {
		var b models.Beneficio
		err := s.db.WithContext(ctx).First(&b, *beneficioID).Error
		switch {
		case err == nil && comercio != nil && b.ComercioID == comercio.ID:
			beneficio = &b
		case err == nil, err == gorm.ErrRecordNotFound:
			// Referencia rota o de otro comercio: cuenta como no disponible,
			// pero el orden fijo de los chequeos sigue decidiendo el motivo
			beneficioRoto = true
		default:
			return nil, errors.NewAppError(errors.ErrCodeDBError, "no se pudo cargar el beneficio", err)
		}
	}

	ahora := time.Now()
	if motivo := evaluarChecks(&socio, comercio, vinculado, s.permitirNoAfiliados, beneficioRoto, beneficio, ahora); motivo != "" {
		s.logger.Info("validación rechazada en %s: socio=%d motivo=%s", faseChequeos, socio.ID, motivo)
		return s.registrarRechazo(ctx, &socio, comercio, beneficio, motivo)
	}

	return s.commit(ctx, &socio, comercio, beneficio, req.MontoBase, ahora)
}

// commit asienta la validación exitosa en una sola transacción: el registro
// de uso, el contador del beneficio y el último acceso del socio entran o
// no entran juntos.
func (s *ValidacionService) commit(ctx context.Context, socio *models.Socio, comercio *models.Comercio, beneficio *models.Beneficio, montoBase float64, ahora time.Time) (*dto.ResultadoValidacionResponse, error) {
	codigo := NuevoCodigoValidacion()

	descuento := 0.0
	if beneficio != nil {
		descuento = beneficio.AplicarDescuento(montoBase)
	}

	uso := models.BeneficioUso{
		SocioID:        socio.ID,
		ComercioID:     comercio.ID,
		AsociacionID:   socio.AsociacionID,
		Fecha:          ahora,
		MontoDescuento: descuento,
		Resultado:      constants.ValidacionExitosa,
		Codigo:         codigo,
	}
	if beneficio != nil {
		uso.BeneficioID = &beneficio.ID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&uso).Error; err != nil {
			return err
		}

		if beneficio != nil {
			incremento := tx.Model(&models.Beneficio{}).
				Where("id = ?", beneficio.ID)
			if beneficio.LimiteUsos != nil {
				// Guarda de cupo dentro de la transacción: dos escaneos
				// concurrentes no pueden superar el límite.
				incremento = incremento.Where("usos_actuales < limite_usos")
			}
			res := incremento.Update("usos_actuales", gorm.Expr("usos_actuales + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errors.ErrBeneficioAgotado
			}
		}

		return tx.Model(&models.Socio{}).
			Where("id = ?", socio.ID).
			Update("ultimo_acceso", ahora).Error
	})
	if err != nil {
		s.logger.Error("validación caída en %s: socio=%d: %v", faseCommit, socio.ID, err)
		if err == errors.ErrBeneficioAgotado {
			return s.registrarRechazo(ctx, socio, comercio, beneficio, constants.MotivoBeneficioNoDisponible)
		}
		// El fallo de commit queda distinguible del rechazo limpio: el
		// motivo error_commit puede requerir reconciliación.
		return s.registrarFallo(ctx, socio, comercio, beneficio, constants.MotivoErrorCommit)
	}

	s.publicarYLimpiar(ctx, &uso)

	resultado := &dto.ResultadoValidacionResponse{
		Estado:         constants.ValidacionExitosa,
		Codigo:         codigo,
		MontoDescuento: descuento,
		Comercio:       comercio.Nombre,
		Socio:          socio.Nombre,
	}
	if beneficio != nil {
		resultado.Beneficio = beneficio.Titulo
	}
	return resultado, nil
}

// registrarRechazo asienta el intento fallido para auditoría. La escritura
// es best-effort: si falla se loguea y el rechazo igual llega al socio. Los
// registros fallidos no cuentan contra el cupo del beneficio.
func (s *ValidacionService) registrarRechazo(ctx context.Context, socio *models.Socio, comercio *models.Comercio, beneficio *models.Beneficio, motivo string) (*dto.ResultadoValidacionResponse, error) {
	uso := models.BeneficioUso{
		SocioID:      socio.ID,
		AsociacionID: socio.AsociacionID,
		Fecha:        time.Now(),
		Resultado:    constants.ValidacionFallida,
		Motivo:       motivo,
		Codigo:       NuevoCodigoValidacion(),
	}
	if comercio != nil {
		uso.ComercioID = comercio.ID
	}
	if beneficio != nil {
		uso.BeneficioID = &beneficio.ID
	}

	if err := s.db.WithContext(ctx).Create(&uso).Error; err != nil {
		s.logger.Error("no se pudo asentar el rechazo del socio %d: %v", socio.ID, err)
	} else {
		s.publicarYLimpiar(ctx, &uso)
	}

	resultado := &dto.ResultadoValidacionResponse{
		Estado: constants.ValidacionFallida,
		Motivo: motivo,
		Codigo: uso.Codigo,
		Socio:  socio.Nombre,
	}
	if comercio != nil {
		resultado.Comercio = comercio.Nombre
	}
	if beneficio != nil {
		resultado.Beneficio = beneficio.Titulo
	}
	return resultado, nil
}

func (s *ValidacionService) registrarFallo(ctx context.Context, socio *models.Socio, comercio *models.Comercio, beneficio *models.Beneficio, motivo string) (*dto.ResultadoValidacionResponse, error) {
	return s.registrarRechazo(ctx, socio, comercio, beneficio, motivo)
}

// publicarYLimpiar anuncia la validación por pub/sub e invalida el cache de
// estadísticas. Ambos pasos son best-effort: la fuente de verdad ya está en
// la base.
func (s *ValidacionService) publicarYLimpiar(ctx context.Context, uso *models.BeneficioUso) {
	if s.publicador != nil {
		s.publicador.Publicar(ctx, CanalValidaciones, SourceServer, uso)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "estadisticas"); err != nil {
			s.logger.Error("no se pudo invalidar el cache de estadísticas: %v", err)
		}
	}
}

// Historial lista las validaciones de un socio, más recientes primero
func (s *ValidacionService) Historial(ctx context.Context, socioID uint, limite int) ([]models.BeneficioUso, error) {
	if limite <= 0 || limite > 100 {
		limite = 50
	}
	var usos []models.BeneficioUso
	err := s.db.WithContext(ctx).
		Preload("Comercio").Preload("Beneficio").
		Where("socio_id = ?", socioID).
		Order("fecha desc").
		Limit(limite).
		Find(&usos).Error
	return usos, err
}

// HistorialComercio lista las validaciones recibidas por un comercio
func (s *ValidacionService) HistorialComercio(ctx context.Context, comercioID uint, limite int) ([]models.BeneficioUso, error) {
	if limite <= 0 || limite > 100 {
		limite = 50
	}
	var usos []models.BeneficioUso
	err := s.db.WithContext(ctx).
		Preload("Socio").Preload("Beneficio").
		Where("comercio_id = ?", comercioID).
		Order("fecha desc").
		Limit(limite).
		Find(&usos).Error
	return usos, err
}

// UsosEnRango trae los usos de un rango para el motor de estadísticas,
// ordenados fecha-descendente como espera el desempate de ResumenValidaciones.
func (s *ValidacionService) UsosEnRango(ctx context.Context, desde, hasta time.Time, asociacionID, comercioID *uint) ([]models.BeneficioUso, error) {
	query := s.db.WithContext(ctx).
		Where("fecha >= ? AND fecha < ?", desde, hasta.AddDate(0, 0, 1)).
		Order("fecha desc")
	if asociacionID != nil {
		query = query.Where("asociacion_id = ?", *asociacionID)
	}
	if comercioID != nil {
		query = query.Where("comercio_id = ?", *comercioID)
	}
	var usos []models.BeneficioUso
	err := query.Find(&usos).Error
	return usos, err
}

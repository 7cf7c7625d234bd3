package controllers

import (
	"socios/services"
	"socios/services/logger"
	"socios/services/notification"

	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencias compartidas de los handlers. Se cablean una sola vez en el
// arranque, antes de registrar las rutas.
var (
	appLogger logger.Logger

	cacheService      *services.CacheService
	publicador        *services.Publicador
	realtimeHub       *services.RealtimeHub
	notifier          notification.Service
	beneficioService  *services.BeneficioService
	membresiaService  *services.MembresiaService
	validacionService *services.ValidacionService
)

type Options struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Melody *melody.Melody
}

// Init construye los services con sus dependencias inyectadas
func Init(opts Options) {
	appLogger = logger.NewDefaultLogger(logger.InfoLevel)

	cacheService = services.NewCacheService(opts.Redis, "socios")
	publicador = services.NewPublicador(opts.Redis, appLogger)
	realtimeHub = services.NewRealtimeHub(opts.Redis, cacheService, appLogger, opts.Melody)
	notifier = notification.NewMelodyService(opts.Melody)

	beneficioService = services.NewBeneficioService(services.BeneficioServiceOptions{
		DB:     opts.DB,
		Cache:  cacheService,
		Logger: appLogger,
	})
	membresiaService = services.NewMembresiaService(services.MembresiaServiceOptions{
		DB:     opts.DB,
		Logger: appLogger,
	})
	validacionService = services.NewValidacionService(services.ValidacionServiceOptions{
		DB:         opts.DB,
		Cache:      cacheService,
		Publicador: publicador,
		Logger:     appLogger,
	})
}

// Servicios expone las instancias cableadas para los jobs del cron
func Servicios() (*services.BeneficioService, *services.MembresiaService, *services.ValidacionService) {
	return beneficioService, membresiaService, validacionService
}

// BroadcastResumen empuja un mensaje de resumen a las sesiones websocket
func BroadcastResumen(mensaje string) error {
	return notifier.SendMessage(mensaje)
}

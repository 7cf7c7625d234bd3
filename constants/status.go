package constants

// Roles de usuario
const (
	RolSocio      = 0
	RolAdmin      = 1
	RolAsociacion = 2
	RolComercio   = 3
)

// Estado de socio
const (
	SocioActivo     = "activo"
	SocioInactivo   = "inactivo"
	SocioSuspendido = "suspendido"
	SocioPendiente  = "pendiente"
	SocioVencido    = "vencido"
)

// Estado de membresía (derivado de los pagos de cuota)
const (
	MembresiaAlDia     = "al_dia"
	MembresiaVencida   = "vencido"
	MembresiaPendiente = "pendiente"
)

// Estado de beneficio
const (
	BeneficioActivo   = "activo"
	BeneficioInactivo = "inactivo"
	BeneficioVencido  = "vencido"
	BeneficioAgotado  = "agotado"
)

// Tipo de descuento de un beneficio
const (
	DescuentoPorcentaje = "porcentaje"
	DescuentoMontoFijo  = "monto_fijo"
)

// Estado de adhesión comercio-asociación
const (
	AdhesionPendiente    = "pendiente"
	AdhesionAprobada     = "aprobada"
	AdhesionRechazada    = "rechazada"
	AdhesionVinculada    = "vinculada"
	AdhesionDesvinculada = "desvinculada"
)

// Resultado de una validación de beneficio
const (
	ValidacionExitosa   = "exitosa"
	ValidacionFallida   = "fallida"
	ValidacionPendiente = "pendiente"
	ValidacionCancelada = "cancelada"
)

// Motivos de rechazo/fallo de una validación
const (
	MotivoCodigoInvalido        = "codigo_invalido"
	MotivoNoAutorizado          = "no_autorizado"
	MotivoMembresiaVencida      = "membresia_vencida"
	MotivoComercioNoVinculado   = "comercio_no_vinculado"
	MotivoBeneficioNoDisponible = "beneficio_no_disponible"
	MotivoErrorCommit           = "error_commit"
)

// Tipo de notificación
const (
	NotificacionInfo        = "info"
	NotificacionExito       = "exito"
	NotificacionAdvertencia = "advertencia"
	NotificacionError       = "error"
	NotificacionAnuncio     = "anuncio"
)

// Prioridad de notificación
const (
	PrioridadBaja    = "baja"
	PrioridadMedia   = "media"
	PrioridadAlta    = "alta"
	PrioridadUrgente = "urgente"
)

// Estado de notificación
const (
	NotificacionNoLeida   = "no_leida"
	NotificacionLeida     = "leida"
	NotificacionArchivada = "archivada"
)

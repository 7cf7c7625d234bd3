package services

import (
	"bytes"
	"context"
	"sync"
	"time"

	"socios/services/logger"
	"socios/utils"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
)

// Origen de un evento de sincronización
const (
	SourceCache  = "cache"  // servido desde la capa local, todavía sin confirmar
	SourceServer = "server" // confirmado por el store, autoritativo
)

// EventoSync es el mensaje que viaja por el canal pub/sub después de cada
// escritura de dominio.
type EventoSync struct {
	Canal     string          `json:"canal"`
	Source    string          `json:"source"`
	Payload   json.RawMessage `json:"payload"`
	EmitidoEn time.Time       `json:"emitidoEn"`
}

// Publicador publica eventos de sincronización en Redis pub/sub
type Publicador struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewPublicador(rdb *redis.Client, log logger.Logger) *Publicador {
	return &Publicador{rdb: rdb, logger: log}
}

// Publicar serializa el payload y lo emite en el canal dado. El error se
// loguea pero no interrumpe al llamador: el push realtime es best-effort,
// la fuente de verdad ya quedó escrita en la base.
func (p *Publicador) Publicar(ctx context.Context, canal, source string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("no se pudo serializar el evento para %s: %v", canal, err)
		return
	}
	evento := EventoSync{
		Canal:     canal,
		Source:    source,
		Payload:   data,
		EmitidoEn: time.Now(),
	}
	raw, err := json.Marshal(evento)
	if err != nil {
		p.logger.Error("no se pudo serializar el evento para %s: %v", canal, err)
		return
	}
	if err := p.rdb.Publish(ctx, canal, raw).Err(); err != nil {
		p.logger.Error("no se pudo publicar en %s: %v", canal, err)
	}
}

// EstadoConexion refleja el estado del stream push de una suscripción
type EstadoConexion struct {
	Conectado    bool      `json:"conectado"`
	Reconectando bool      `json:"reconectando"`
	UltimoSync   time.Time `json:"ultimoSync"`
	Error        string    `json:"error,omitempty"`
	Reintentos   int       `json:"reintentos"`
}

// Snapshot es la vista estable que una suscripción expone a sus consumidores
type Snapshot struct {
	Canal     string          `json:"canal"`
	Data      json.RawMessage `json:"data"`
	Loading   bool            `json:"loading"`
	FromCache bool            `json:"fromCache"`
	Estado    EstadoConexion  `json:"estado"`
}

// SuscripcionOptions configura una suscripción realtime
type SuscripcionOptions struct {
	Canal         string
	Debounce      time.Duration
	TTLCache      time.Duration
	CacheOffline  bool
	EnableRetry   bool
	MaxReintentos int
	RetryDelay    time.Duration
	OnSnapshot    func(Snapshot)
}

// Suscripcion envuelve un canal pub/sub y mantiene el último snapshot más
// el estado de conexión, con reintentos acotados y aplicación debounced.
type Suscripcion struct {
	mu     sync.Mutex
	opts   SuscripcionOptions
	rdb    *redis.Client
	cache  *CacheService
	logger logger.Logger

	debouncer  *utils.Debouncer
	pubsub     *redis.PubSub
	cancel     context.CancelFunc
	retryTimer *time.Timer

	data      json.RawMessage
	loading   bool
	fromCache bool
	estado    EstadoConexion

	// pendienteServer evita que un eco de cache pise un push de server que
	// todavía está esperando su ventana de debounce.
	pendienteServer bool
	cerrada         bool
}

// NewSuscripcion crea la suscripción y arranca el loop de consumo.
// Si CacheOffline está habilitado y hay un snapshot cacheado, data se
// puebla de inmediato con fromCache=true, pero loading sigue en true hasta
// que llegue un valor vivo.
func NewSuscripcion(rdb *redis.Client, cache *CacheService, log logger.Logger, opts SuscripcionOptions) *Suscripcion {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.TTLCache <= 0 {
		opts.TTLCache = TTLColeccion
	}
	if opts.MaxReintentos <= 0 {
		opts.MaxReintentos = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 3 * time.Second
	}

	s := &Suscripcion{
		opts:      opts,
		rdb:       rdb,
		cache:     cache,
		logger:    log,
		debouncer: utils.NewDebouncer(opts.Debounce),
		loading:   true,
	}

	if opts.CacheOffline && cache != nil {
		var cacheado json.RawMessage
		if ok, err := cache.Get(context.Background(), s.cacheKey(), &cacheado); err == nil && ok {
			s.data = cacheado
			s.fromCache = true
		}
	}

	s.suscribir()
	return s
}

func (s *Suscripcion) cacheKey() string {
	return "rt:" + s.opts.Canal
}

func (s *Suscripcion) suscribir() {
	s.mu.Lock()
	if s.cerrada {
		s.mu.Unlock()
		return
	}
	s.estado.Conectado = false
	s.estado.Reconectando = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.pubsub = s.rdb.Subscribe(ctx, s.opts.Canal)
	pubsub := s.pubsub
	s.mu.Unlock()

	s.emitir()
	go s.consumir(ctx, pubsub)
}

func (s *Suscripcion) consumir(ctx context.Context, pubsub *redis.PubSub) {
	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			s.onError(err)
			return
		}

		var evento EventoSync
		if err := json.Unmarshal([]byte(msg.Payload), &evento); err != nil {
			s.logger.Error("evento ilegible en %s: %v", s.opts.Canal, err)
			continue
		}
		s.onEvento(evento)
	}
}

func (s *Suscripcion) onEvento(evento EventoSync) {
	s.mu.Lock()
	if s.cerrada {
		s.mu.Unlock()
		return
	}
	if evento.Source == SourceCache {
		// Los ecos de cache sin cambios no disparan re-render, y un eco
		// nunca reemplaza un push de server pendiente.
		if s.pendienteServer || bytes.Equal(evento.Payload, s.data) {
			s.mu.Unlock()
			return
		}
	} else {
		s.pendienteServer = true
	}
	s.mu.Unlock()

	s.debouncer.Do(func() {
		s.aplicar(evento)
	})
}

func (s *Suscripcion) aplicar(evento EventoSync) {
	s.mu.Lock()
	if s.cerrada {
		s.mu.Unlock()
		return
	}
	s.data = evento.Payload
	s.loading = false
	s.fromCache = evento.Source == SourceCache
	if evento.Source == SourceServer {
		s.pendienteServer = false
		s.estado.Conectado = true
		s.estado.Reconectando = false
		s.estado.UltimoSync = time.Now()
		s.estado.Error = ""
		s.estado.Reintentos = 0
	}
	s.mu.Unlock()

	if evento.Source == SourceServer && s.cache != nil {
		if err := s.cache.Set(context.Background(), s.cacheKey(), evento.Payload, s.opts.TTLCache); err != nil {
			s.logger.Error("no se pudo cachear el snapshot de %s: %v", s.opts.Canal, err)
		}
	}

	s.emitir()
}

func (s *Suscripcion) onError(err error) {
	s.mu.Lock()
	if s.cerrada {
		s.mu.Unlock()
		return
	}
	s.estado.Conectado = false
	s.estado.Reconectando = false
	s.estado.Error = err.Error()
	s.logger.Error("stream de %s caído: %v", s.opts.Canal, err)

	if s.opts.EnableRetry && s.estado.Reintentos < s.opts.MaxReintentos {
		s.estado.Reintentos++
		s.retryTimer = time.AfterFunc(s.opts.RetryDelay, s.resuscribir)
	}
	s.mu.Unlock()

	s.emitir()
}

func (s *Suscripcion) resuscribir() {
	s.mu.Lock()
	if s.cerrada {
		s.mu.Unlock()
		return
	}
	if s.pubsub != nil {
		s.pubsub.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.suscribir()
}

// Retry reinicia el contador de reintentos y vuelve a suscribirse ya mismo
func (s *Suscripcion) Retry() {
	s.mu.Lock()
	s.estado.Reintentos = 0
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
	s.mu.Unlock()

	s.resuscribir()
}

// ForceRefresh invalida el snapshot cacheado del canal y resuscribe
func (s *Suscripcion) ForceRefresh() {
	if s.cache != nil {
		if err := s.cache.Invalidate(context.Background(), s.cacheKey()); err != nil {
			s.logger.Error("no se pudo invalidar el cache de %s: %v", s.opts.Canal, err)
		}
	}
	s.Retry()
}

// Snapshot devuelve la vista actual de la suscripción
func (s *Suscripcion) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Canal:     s.opts.Canal,
		Data:      s.data,
		Loading:   s.loading,
		FromCache: s.fromCache,
		Estado:    s.estado,
	}
}

func (s *Suscripcion) emitir() {
	if s.opts.OnSnapshot == nil {
		return
	}
	s.opts.OnSnapshot(s.Snapshot())
}

// Close desuscribe del canal y cancela timers pendientes. Obligatorio al
// liberar el scope dueño: nada puede dispararse después de Close.
func (s *Suscripcion) Close() {
	s.mu.Lock()
	if s.cerrada {
		s.mu.Unlock()
		return
	}
	s.cerrada = true
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
	if s.pubsub != nil {
		s.pubsub.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.debouncer.Stop()
}

// RealtimeHub mantiene una suscripción por canal y reenvía los snapshots a
// las sesiones websocket que pidieron ese canal.
type RealtimeHub struct {
	mu     sync.Mutex
	rdb    *redis.Client
	cache  *CacheService
	logger logger.Logger
	m      *melody.Melody

	suscripciones map[string]*Suscripcion
}

func NewRealtimeHub(rdb *redis.Client, cache *CacheService, log logger.Logger, m *melody.Melody) *RealtimeHub {
	h := &RealtimeHub{
		rdb:           rdb,
		cache:         cache,
		logger:        log,
		m:             m,
		suscripciones: make(map[string]*Suscripcion),
	}

	m.HandleConnect(func(sess *melody.Session) {
		canal := sess.Request.URL.Query().Get("canal")
		if canal == "" {
			return
		}
		sess.Set("canal", canal)
		h.Asegurar(canal)
	})

	return h
}

// Asegurar devuelve la suscripción del canal, creándola si no existe
func (h *RealtimeHub) Asegurar(canal string) *Suscripcion {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.suscripciones[canal]; ok {
		return s
	}

	s := NewSuscripcion(h.rdb, h.cache, h.logger, SuscripcionOptions{
		Canal:        canal,
		CacheOffline: true,
		EnableRetry:  true,
		OnSnapshot: func(snap Snapshot) {
			data, err := json.Marshal(snap)
			if err != nil {
				return
			}
			h.m.BroadcastFilter(data, func(sess *melody.Session) bool {
				c, ok := sess.Get("canal")
				return ok && c == canal
			})
		},
	})
	h.suscripciones[canal] = s
	return s
}

// Cerrar libera todas las suscripciones del hub
func (h *RealtimeHub) Cerrar() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for canal, s := range h.suscripciones {
		s.Close()
		delete(h.suscripciones, canal)
	}
}

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"socios/services/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisDePrueba(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

// colector acumula snapshots emitidos, apto para espiar desde el test
type colector struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (c *colector) recibir(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = append(c.snapshots, snap)
}

func (c *colector) ultimo() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.snapshots) == 0 {
		return Snapshot{}, false
	}
	return c.snapshots[len(c.snapshots)-1], true
}

func esperar(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 3*time.Second, 10*time.Millisecond)
}

func TestSuscripcion_AplicaEventoDeServer(t *testing.T) {
	rdb := redisDePrueba(t)
	log := logger.NewDefaultLogger(logger.ErrorLevel)
	col := &colector{}

	sus := NewSuscripcion(rdb, nil, log, SuscripcionOptions{
		Canal:      "validaciones",
		Debounce:   20 * time.Millisecond,
		OnSnapshot: col.recibir,
	})
	defer sus.Close()

	// Dejar que la suscripción llegue a Redis antes de publicar
	time.Sleep(100 * time.Millisecond)

	pub := NewPublicador(rdb, log)
	pub.Publicar(context.Background(), "validaciones", SourceServer, map[string]int{"total": 7})

	esperar(t, func() bool {
		snap, ok := col.ultimo()
		return ok && !snap.Loading && snap.Estado.Conectado
	})

	snap, _ := col.ultimo()
	assert.False(t, snap.FromCache, "un push de server no se marca como cache")
	assert.JSONEq(t, `{"total":7}`, string(snap.Data))
	assert.Zero(t, snap.Estado.Reintentos)
	assert.False(t, snap.Estado.UltimoSync.IsZero())
}

func TestSuscripcion_DebounceConservaElUltimoPush(t *testing.T) {
	rdb := redisDePrueba(t)
	log := logger.NewDefaultLogger(logger.ErrorLevel)
	col := &colector{}

	sus := NewSuscripcion(rdb, nil, log, SuscripcionOptions{
		Canal:      "validaciones",
		Debounce:   80 * time.Millisecond,
		OnSnapshot: col.recibir,
	})
	defer sus.Close()

	time.Sleep(100 * time.Millisecond)

	pub := NewPublicador(rdb, log)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		pub.Publicar(ctx, "validaciones", SourceServer, map[string]int{"total": i})
		time.Sleep(5 * time.Millisecond)
	}

	esperar(t, func() bool {
		snap, ok := col.ultimo()
		return ok && !snap.Loading
	})

	// La ráfaga colapsa en el último valor: los intermedios pueden caerse,
	// el push final de server nunca.
	snap, _ := col.ultimo()
	assert.JSONEq(t, `{"total":5}`, string(snap.Data))
}

func TestSuscripcion_ArrancaCargando(t *testing.T) {
	rdb := redisDePrueba(t)
	log := logger.NewDefaultLogger(logger.ErrorLevel)

	sus := NewSuscripcion(rdb, nil, log, SuscripcionOptions{Canal: "vacio"})
	defer sus.Close()

	snap := sus.Snapshot()
	assert.True(t, snap.Loading, "sin datos todavía, loading sigue en true")
	assert.Nil(t, snap.Data)
}

func TestSuscripcion_SemillaDeCacheNoApagaLoading(t *testing.T) {
	rdb := redisDePrueba(t)
	log := logger.NewDefaultLogger(logger.ErrorLevel)
	cache := NewCacheService(rdb, "test")

	require.NoError(t, cache.Set(context.Background(), "rt:validaciones", map[string]int{"total": 3}, time.Minute))

	sus := NewSuscripcion(rdb, cache, log, SuscripcionOptions{
		Canal:        "validaciones",
		CacheOffline: true,
	})
	defer sus.Close()

	snap := sus.Snapshot()
	assert.True(t, snap.FromCache, "la semilla viene del cache")
	assert.True(t, snap.Loading, "el cache puebla data pero no confirma el stream")
	assert.JSONEq(t, `{"total":3}`, string(snap.Data))
}

func TestSuscripcion_CloseDetieneElStream(t *testing.T) {
	rdb := redisDePrueba(t)
	log := logger.NewDefaultLogger(logger.ErrorLevel)
	col := &colector{}

	sus := NewSuscripcion(rdb, nil, log, SuscripcionOptions{
		Canal:      "validaciones",
		Debounce:   10 * time.Millisecond,
		OnSnapshot: col.recibir,
	})

	time.Sleep(100 * time.Millisecond)
	sus.Close()

	pub := NewPublicador(rdb, log)
	pub.Publicar(context.Background(), "validaciones", SourceServer, map[string]int{"total": 1})
	time.Sleep(150 * time.Millisecond)

	snap := sus.Snapshot()
	assert.True(t, snap.Loading, "nada se aplica después de Close")
}

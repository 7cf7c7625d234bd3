package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_ColapsaLlamadasEnUnaSola(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var ejecuciones int32
	var mu sync.Mutex
	var ultimo int

	for i := 1; i <= 10; i++ {
		valor := i
		d.Do(func() {
			atomic.AddInt32(&ejecuciones, 1)
			mu.Lock()
			ultimo = valor
			mu.Unlock()
		})
	}

	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&ejecuciones))
	mu.Lock()
	assert.Equal(t, 10, ultimo, "debe ejecutar con los argumentos de la última llamada")
	mu.Unlock()
}

func TestDebouncer_EjecutaDespuesDeLaVentana(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var ejecuciones int32
	d.Do(func() { atomic.AddInt32(&ejecuciones, 1) })

	assert.Equal(t, int32(0), atomic.LoadInt32(&ejecuciones), "no debe ejecutar antes de la ventana")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ejecuciones))
}

func TestDebouncer_StopCancelaPendientes(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var ejecuciones int32
	d.Do(func() { atomic.AddInt32(&ejecuciones, 1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&ejecuciones), "no debe disparar después de Stop")

	// Do después de Stop tampoco agenda nada
	d.Do(func() { atomic.AddInt32(&ejecuciones, 1) })
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&ejecuciones))
}

func TestDebouncer_LlamadasConcurrentesDisparanUnaSola(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	var ejecuciones int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Do(func() { atomic.AddInt32(&ejecuciones, 1) })
		}()
	}
	wg.Wait()

	time.Sleep(100 * time.Millisecond)

	// Aunque un Stop llegue tarde sobre un timer que ya está disparando,
	// sólo la última generación agendada puede correr
	assert.Equal(t, int32(1), atomic.LoadInt32(&ejecuciones))
}

func TestThrottler_PrimeraLlamadaInmediata(t *testing.T) {
	th := NewThrottler(100 * time.Millisecond)
	defer th.Stop()

	var ejecuciones int32
	th.Do(func() { atomic.AddInt32(&ejecuciones, 1) })

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ejecuciones), "la primera llamada corre de inmediato")
}

func TestThrottler_AgrupaDentroDelIntervalo(t *testing.T) {
	th := NewThrottler(80 * time.Millisecond)
	defer th.Stop()

	var ejecuciones int32
	var mu sync.Mutex
	var ultimo int

	for i := 1; i <= 5; i++ {
		valor := i
		th.Do(func() {
			atomic.AddInt32(&ejecuciones, 1)
			mu.Lock()
			ultimo = valor
			mu.Unlock()
		})
	}

	time.Sleep(300 * time.Millisecond)

	// Una inmediata + una agendada al borde de la ventana con el último valor
	assert.Equal(t, int32(2), atomic.LoadInt32(&ejecuciones))
	mu.Lock()
	assert.Equal(t, 5, ultimo)
	mu.Unlock()
}

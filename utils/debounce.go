package utils

import (
	"sync"
	"time"
)

// Debouncer agrupa llamadas repetidas dentro de una ventana de silencio y
// ejecuta sólo la última una vez que la ventana expira. Lo usan todos los
// consumidores realtime para no reprocesar cada push del store.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer crea un Debouncer con la demora dada
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do agenda fn; si ya había una llamada pendiente la reemplaza.
// Sólo la última fn agendada dentro de la ventana termina ejecutándose.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Stop sobre un timer que ya empezó a disparar devuelve false: la
		// generación desempata y el fn reemplazado no corre.
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		fn()
	})
}

// Stop descarta cualquier ejecución pendiente. Después de Stop el Debouncer
// no vuelve a disparar; el dueño debe llamarlo al liberar la suscripción.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler limita la frecuencia de ejecución: ejecuta de inmediato si pasó
// el intervalo desde la última corrida, si no agenda la última fn al borde
// de la ventana.
type Throttler struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	timer    *time.Timer
	stopped  bool
}

// NewThrottler crea un Throttler con el intervalo dado
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval}
}

// Do ejecuta fn ahora si el intervalo ya pasó; si no, agenda fn para el
// final de la ventana reemplazando cualquier pendiente anterior.
func (t *Throttler) Do(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}

	ahora := time.Now()
	restante := t.interval - ahora.Sub(t.last)
	if restante <= 0 {
		t.last = ahora
		go fn()
		return
	}

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(restante, func() {
		t.mu.Lock()
		if t.stopped {
			t.mu.Unlock()
			return
		}
		t.last = time.Now()
		t.mu.Unlock()
		fn()
	})
}

// Stop descarta cualquier ejecución pendiente
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"socios/config"
	"socios/models"
	"socios/utils"

	"github.com/robfig/cron/v3"
)

// MembresiaRecalculator re-deriva el estado de membresía de todos los socios
type MembresiaRecalculator interface {
	RecalcularMembresias(ctx context.Context) (int, error)
}

// ContadorReconciliator reconstruye los contadores de uso desde el historial
type ContadorReconciliator interface {
	ReconciliarContadores(ctx context.Context) (int, error)
	MarcarVencidos(ctx context.Context) (int64, error)
}

// AgregadoRefresher recalcula las proyecciones de una asociación
type AgregadoRefresher func(asociacion *models.Asociacion) error

// ResumenBroadcaster empuja un resumen por websocket al terminar un refresco
type ResumenBroadcaster func(mensaje string) error

var (
	membresiaRecalculator MembresiaRecalculator
	contadorReconciliator ContadorReconciliator
	agregadoRefresher     AgregadoRefresher
	resumenBroadcaster    ResumenBroadcaster
)

// SetMembresiaRecalculator configura la implementación del recálculo
func SetMembresiaRecalculator(r MembresiaRecalculator) {
	membresiaRecalculator = r
}

// SetContadorReconciliator configura la implementación de la reconciliación
func SetContadorReconciliator(r ContadorReconciliator) {
	contadorReconciliator = r
}

// SetAgregadoRefresher configura el recálculo de agregados de asociaciones
func SetAgregadoRefresher(r AgregadoRefresher) {
	agregadoRefresher = r
}

// SetResumenBroadcaster configura el push del resumen de los refrescos
func SetResumenBroadcaster(b ResumenBroadcaster) {
	resumenBroadcaster = b
}

// InitCronJobs registra los jobs periódicos y arranca el cron
func InitCronJobs(c *cron.Cron) error {
	// Recalcular membresías a las 0h: el paso del tiempo mueve estados
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Printf("Recalculando membresías: %v", time.Now())
		if membresiaRecalculator == nil {
			log.Printf("Error: MembresiaRecalculator no configurado")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		actualizados, err := membresiaRecalculator.RecalcularMembresias(ctx)
		if err != nil {
			utils.LogError("Error al recalcular membresías: %v", err)
			return
		}
		utils.LogInfo("Membresías recalculadas: %d socios actualizados", actualizados)
	})
	if err != nil {
		return err
	}

	// Reconciliar contadores a la 1h: beneficio_usos es la fuente de verdad
	_, err = c.AddFunc("0 1 * * *", func() {
		log.Printf("Reconciliando contadores de beneficios: %v", time.Now())
		if contadorReconciliator == nil {
			log.Printf("Error: ContadorReconciliator no configurado")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if vencidos, err := contadorReconciliator.MarcarVencidos(ctx); err != nil {
			log.Printf("Error al marcar beneficios vencidos: %v", err)
		} else if vencidos > 0 {
			log.Printf("Beneficios vencidos: %d", vencidos)
		}

		corregidos, err := contadorReconciliator.ReconciliarContadores(ctx)
		if err != nil {
			utils.LogError("Error al reconciliar contadores: %v", err)
			return
		}
		utils.LogInfo("Contadores reconciliados: %d beneficios corregidos", corregidos)
	})
	if err != nil {
		return err
	}

	// Refrescar agregados de asociaciones a las 2h
	_, err = c.AddFunc("0 2 * * *", func() {
		log.Printf("Refrescando agregados de asociaciones: %v", time.Now())
		if agregadoRefresher == nil {
			log.Printf("Error: AgregadoRefresher no configurado")
			return
		}
		var asociaciones []models.Asociacion
		if err := config.DB.Find(&asociaciones).Error; err != nil {
			log.Printf("Error al listar asociaciones: %v", err)
			return
		}
		refrescadas := 0
		for i := range asociaciones {
			if err := agregadoRefresher(&asociaciones[i]); err != nil {
				log.Printf("Error al refrescar la asociación %d: %v", asociaciones[i].ID, err)
				continue
			}
			refrescadas++
		}
		utils.LogInfo("Agregados refrescados: %d de %d asociaciones", refrescadas, len(asociaciones))
		if resumenBroadcaster != nil {
			mensaje := fmt.Sprintf("📊 Agregados actualizados para %d asociaciones.", refrescadas)
			if err := resumenBroadcaster(mensaje); err != nil {
				log.Printf("Error al difundir el resumen: %v", err)
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs inicializados")
	return nil
}

package services

import (
	"time"

	"socios/constants"
	"socios/dto"
	"socios/models"
)

// Las funciones de este archivo son puras y deterministas: reciben el
// historial de usos más un rango y derivan los números del dashboard.
// El historial (beneficio_usos) es la única fuente de verdad; acá no se
// lee ningún contador.

// ResumenValidaciones calcula los agregados de un rango de fechas.
// Los usos deben venir ordenados por fecha descendente: ante un empate en
// "beneficio más usado" gana el primero encontrado en ese orden (empate
// dependiente del orden de iteración, asumido por el dashboard original).
func ResumenValidaciones(usos []models.BeneficioUso, desde, hasta time.Time) dto.ResumenValidaciones {
	resumen := dto.ResumenValidaciones{}

	asociaciones := make(map[uint]bool)
	comercios := make(map[uint]bool)
	socios := make(map[uint]bool)
	porBeneficio := make(map[uint]int)

	var topBeneficio *uint
	topUsos := 0

	for i := range usos {
		uso := &usos[i]
		resumen.Total++
		if uso.Resultado == constants.ValidacionExitosa {
			resumen.Exitosas++
		} else {
			resumen.Fallidas++
		}

		if uso.AsociacionID != nil {
			asociaciones[*uso.AsociacionID] = true
		}
		comercios[uso.ComercioID] = true
		socios[uso.SocioID] = true

		if uso.BeneficioID != nil {
			porBeneficio[*uso.BeneficioID]++
			// > estricto: el primero en alcanzar un conteo lo retiene
			if porBeneficio[*uso.BeneficioID] > topUsos {
				topUsos = porBeneficio[*uso.BeneficioID]
				id := *uso.BeneficioID
				topBeneficio = &id
			}
		}
	}

	resumen.AsociacionesUnicas = len(asociaciones)
	resumen.ComerciosUnicos = len(comercios)
	resumen.SociosUnicos = len(socios)
	resumen.BeneficioMasUsado = topBeneficio
	resumen.UsosBeneficioTop = topUsos

	dias := diasEnRango(desde, hasta)
	if dias < 1 {
		dias = 1
	}
	resumen.PromedioDiario = float64(resumen.Total) / float64(dias)

	if resumen.Total > 0 {
		resumen.TasaExito = float64(resumen.Exitosas) / float64(resumen.Total) * 100
	}

	return resumen
}

// BucketsDiarios devuelve un bucket por día calendario del rango [desde,
// hasta] inclusive, con contadores en cero para los días sin actividad.
func BucketsDiarios(usos []models.BeneficioUso, desde, hasta time.Time) []dto.BucketDiario {
	desde = truncarDia(desde)
	hasta = truncarDia(hasta)
	if hasta.Before(desde) {
		return nil
	}

	indice := make(map[string]int)
	var buckets []dto.BucketDiario
	for dia := desde; !dia.After(hasta); dia = dia.AddDate(0, 0, 1) {
		clave := dia.Format("2006-01-02")
		indice[clave] = len(buckets)
		buckets = append(buckets, dto.BucketDiario{Fecha: clave})
	}

	for i := range usos {
		uso := &usos[i]
		clave := uso.Fecha.Format("2006-01-02")
		pos, ok := indice[clave]
		if !ok {
			continue
		}
		buckets[pos].Total++
		if uso.Resultado == constants.ValidacionExitosa {
			buckets[pos].Exitosas++
		} else {
			buckets[pos].Fallidas++
		}
	}

	return buckets
}

// BucketsPorHora devuelve 24 buckets por hora local, sin distinguir fecha
func BucketsPorHora(usos []models.BeneficioUso) []dto.BucketHora {
	buckets := make([]dto.BucketHora, 24)
	for h := 0; h < 24; h++ {
		buckets[h].Hora = h
	}
	for i := range usos {
		buckets[usos[i].Fecha.Hour()].Total++
	}
	return buckets
}

// CrecimientoMensual compara el período actual contra el anterior.
// Sin historial previo: 100 si hubo actividad nueva, 0 si no.
func CrecimientoMensual(actual, anterior int) float64 {
	if anterior == 0 {
		if actual > 0 {
			return 100
		}
		return 0
	}
	return float64(actual-anterior) / float64(anterior) * 100
}

func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func diasEnRango(desde, hasta time.Time) int {
	return int(truncarDia(hasta).Sub(truncarDia(desde)).Hours()/24) + 1
}

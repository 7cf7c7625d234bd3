package controllers

import (
	"strconv"
	"time"

	"socios/dto"
	"socios/response"
	"socios/services"
	"socios/validator"

	"github.com/gin-gonic/gin"
)

// rangoDeQuery resuelve el rango de fechas pedido; sin parámetros usa los
// últimos 30 días
func rangoDeQuery(c *gin.Context) (time.Time, time.Time, error) {
	desde := c.Query("desde")
	hasta := c.Query("hasta")
	if desde == "" || hasta == "" {
		ahora := time.Now()
		return ahora.AddDate(0, 0, -30), ahora, nil
	}
	return validator.ValidateRangoFechas(desde, hasta)
}

func filtrosDeQuery(c *gin.Context) (*uint, *uint) {
	var asociacionID, comercioID *uint
	if v, err := strconv.Atoi(c.Query("asociacionId")); err == nil && v > 0 {
		id := uint(v)
		asociacionID = &id
	}
	if v, err := strconv.Atoi(c.Query("comercioId")); err == nil && v > 0 {
		id := uint(v)
		comercioID = &id
	}
	return asociacionID, comercioID
}

func claveEstadisticas(tipo string, desde, hasta time.Time, c *gin.Context) string {
	return "estadisticas:" + tipo + ":" +
		desde.Format("2006-01-02") + ":" + hasta.Format("2006-01-02") +
		":a" + c.Query("asociacionId") + ":c" + c.Query("comercioId")
}

// GetResumenValidaciones devuelve los agregados del rango pedido
func GetResumenValidaciones(c *gin.Context) {
	desde, hasta, err := rangoDeQuery(c)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	cacheKey := claveEstadisticas("resumen", desde, hasta, c)
	var cacheado dto.ResumenValidaciones
	if ok, err := cacheService.Get(c.Request.Context(), cacheKey, &cacheado); err == nil && ok {
		response.Success(c, cacheado)
		return
	}

	asociacionID, comercioID := filtrosDeQuery(c)
	usos, err := validacionService.UsosEnRango(c.Request.Context(), desde, hasta, asociacionID, comercioID)
	if err != nil {
		response.ServerError(c)
		return
	}

	resumen := services.ResumenValidaciones(usos, desde, hasta)

	if err := cacheService.Set(c.Request.Context(), cacheKey, resumen, services.TTLEstadisticas); err != nil {
		appLogger.Error("no se pudo cachear el resumen: %v", err)
	}

	response.Success(c, resumen)
}

// GetValidacionesDiarias devuelve un bucket por día calendario del rango
func GetValidacionesDiarias(c *gin.Context) {
	desde, hasta, err := rangoDeQuery(c)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	cacheKey := claveEstadisticas("diario", desde, hasta, c)
	var cacheados []dto.BucketDiario
	if ok, err := cacheService.Get(c.Request.Context(), cacheKey, &cacheados); err == nil && ok {
		response.SuccessWithTotal(c, cacheados, len(cacheados))
		return
	}

	asociacionID, comercioID := filtrosDeQuery(c)
	usos, err := validacionService.UsosEnRango(c.Request.Context(), desde, hasta, asociacionID, comercioID)
	if err != nil {
		response.ServerError(c)
		return
	}

	buckets := services.BucketsDiarios(usos, desde, hasta)

	if err := cacheService.Set(c.Request.Context(), cacheKey, buckets, services.TTLEstadisticas); err != nil {
		appLogger.Error("no se pudo cachear los buckets diarios: %v", err)
	}

	response.SuccessWithTotal(c, buckets, len(buckets))
}

// GetValidacionesPorHora devuelve los 24 buckets horarios del rango
func GetValidacionesPorHora(c *gin.Context) {
	desde, hasta, err := rangoDeQuery(c)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	asociacionID, comercioID := filtrosDeQuery(c)
	usos, err := validacionService.UsosEnRango(c.Request.Context(), desde, hasta, asociacionID, comercioID)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, services.BucketsPorHora(usos))
}

// GetCrecimientoMensual compara el mes en curso contra el anterior
func GetCrecimientoMensual(c *gin.Context) {
	ahora := time.Now()
	inicioActual := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	inicioAnterior := inicioActual.AddDate(0, -1, 0)

	asociacionID, comercioID := filtrosDeQuery(c)

	actuales, err := validacionService.UsosEnRango(c.Request.Context(), inicioActual, ahora, asociacionID, comercioID)
	if err != nil {
		response.ServerError(c)
		return
	}
	anteriores, err := validacionService.UsosEnRango(c.Request.Context(), inicioAnterior, inicioActual.AddDate(0, 0, -1), asociacionID, comercioID)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"actual":      len(actuales),
		"anterior":    len(anteriores),
		"crecimiento": services.CrecimientoMensual(len(actuales), len(anteriores)),
	})
}

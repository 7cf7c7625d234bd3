package main

import (
	"log"
	"net/http"
	"os"

	"socios/config"
	"socios/controllers"
	"socios/jobs"
	"socios/models"
	"socios/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(
		&models.Asociacion{},
		&models.Socio{},
		&models.Comercio{},
		&models.Adhesion{},
		&models.Beneficio{},
		&models.BeneficioUso{},
		&models.Notificacion{},
	); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no se pudo cargar .env, se usan las variables de entorno disponibles: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, m)

	beneficioService, membresiaService, _ := controllers.Servicios()
	jobs.SetMembresiaRecalculator(membresiaService)
	jobs.SetContadorReconciliator(beneficioService)
	jobs.SetAgregadoRefresher(controllers.RecalcularAgregados)
	jobs.SetResumenBroadcaster(controllers.BroadcastResumen)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

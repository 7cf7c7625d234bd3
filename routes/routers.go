package routes

import (
	"context"
	"net/http"

	"socios/config"
	"socios/constants"
	"socios/controllers"
	middlewares "socios/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) {

	controllers.Init(controllers.Options{
		DB:     db,
		Redis:  redisCli,
		Melody: m,
	})

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", controllers.RegisterSocio)
	v1.POST("/auth/login", controllers.Login)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.PUT("/auth/password", middlewares.AuthMiddleware(), controllers.CambiarPassword)
	v1.GET("/profile", middlewares.AuthMiddleware(), controllers.GetPerfil)

	v1.GET("/socios", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.GetSocios)
	v1.GET("/socios/:id", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.GetSocioDetail)
	v1.PUT("/socios", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.UpdateSocio)
	v1.PUT("/socioStatus", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.ChangeSocioStatus)
	v1.POST("/pagos", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.RegistrarPago)
	v1.GET("/historial", middlewares.AuthMiddleware(constants.RolSocio), controllers.GetHistorialSocio)

	v1.GET("/asociaciones", controllers.GetAsociaciones)
	v1.GET("/asociaciones/:id", controllers.GetAsociacionDetail)
	v1.POST("/asociaciones", middlewares.AuthMiddleware(constants.RolAdmin), controllers.CreateAsociacion)
	v1.PUT("/asociaciones", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.UpdateAsociacion)
	v1.POST("/asociaciones/:id/refrescar", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.RefrescarAgregadosAsociacion)

	v1.GET("/comercios", controllers.GetComercios)
	v1.GET("/comercios/:id", controllers.GetComercioDetail)
	v1.POST("/comercios", middlewares.AuthMiddleware(constants.RolAdmin), controllers.CreateComercio)
	v1.PUT("/comercios", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolComercio), controllers.UpdateComercio)
	v1.GET("/comercioQR", middlewares.AuthMiddleware(constants.RolComercio), controllers.GetCodigoQRComercio)

	v1.POST("/adhesiones", middlewares.AuthMiddleware(constants.RolComercio, constants.RolAsociacion), controllers.SolicitarAdhesion)
	v1.PUT("/adhesiones", middlewares.AuthMiddleware(constants.RolAsociacion, constants.RolAdmin), controllers.TransicionAdhesion)
	v1.GET("/adhesiones", middlewares.AuthMiddleware(constants.RolComercio, constants.RolAsociacion, constants.RolAdmin), controllers.GetAdhesiones)

	v1.GET("/beneficios", middlewares.AuthMiddleware(constants.RolSocio), controllers.GetBeneficiosDisponibles)
	v1.GET("/beneficiosComercio", middlewares.AuthMiddleware(constants.RolComercio), controllers.GetBeneficiosComercio)
	v1.GET("/beneficiosAsociacion/:id", controllers.GetBeneficiosAsociacion)
	v1.GET("/beneficios/buscar", controllers.BuscarBeneficios)
	v1.GET("/beneficios/:id", controllers.GetBeneficioDetail)
	v1.POST("/beneficios", middlewares.AuthMiddleware(constants.RolComercio), controllers.CreateBeneficio)
	v1.PUT("/beneficios", middlewares.AuthMiddleware(constants.RolComercio), controllers.UpdateBeneficio)
	v1.PUT("/beneficioStatus", middlewares.AuthMiddleware(constants.RolComercio, constants.RolAdmin), controllers.ChangeBeneficioStatus)
	v1.DELETE("/beneficios/:id", middlewares.AuthMiddleware(constants.RolComercio, constants.RolAdmin), controllers.DeleteBeneficio)
	v1.GET("/beneficioQR/:id", middlewares.AuthMiddleware(constants.RolComercio), controllers.GetCodigoQRBeneficio)

	v1.POST("/validar", middlewares.AuthMiddleware(constants.RolSocio), controllers.ValidarCodigo)
	v1.GET("/validacionesComercio", middlewares.AuthMiddleware(constants.RolComercio), controllers.GetHistorialComercio)

	v1.GET("/estadisticas/resumen", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion, constants.RolComercio), controllers.GetResumenValidaciones)
	v1.GET("/estadisticas/diario", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion, constants.RolComercio), controllers.GetValidacionesDiarias)
	v1.GET("/estadisticas/horario", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion, constants.RolComercio), controllers.GetValidacionesPorHora)
	v1.GET("/estadisticas/crecimiento", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion, constants.RolComercio), controllers.GetCrecimientoMensual)

	v1.POST("/notificaciones", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.CreateNotificacion)
	v1.GET("/notificaciones", middlewares.AuthMiddleware(constants.RolSocio), controllers.GetNotificaciones)
	v1.PUT("/notificacionStatus", middlewares.AuthMiddleware(), controllers.ChangeNotificacionStatus)
	v1.DELETE("/notificaciones/:id", middlewares.AuthMiddleware(constants.RolAdmin, constants.RolAsociacion), controllers.DeleteNotificacion)

	v1.POST("/img/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No hay archivo"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error al abrir el archivo"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "logos"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falló la subida"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Subida exitosa",
			"url":     resp.SecureURL,
		})
	})
}

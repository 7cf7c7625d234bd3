package controllers

import (
	"strconv"

	"socios/config"
	"socios/constants"
	"socios/dto"
	"socios/models"
	"socios/response"
	"socios/services"

	"github.com/gin-gonic/gin"
)

func comercioAResponse(co *models.Comercio) dto.ComercioResponse {
	return dto.ComercioResponse{
		ID:          co.ID,
		Nombre:      co.Nombre,
		Email:       co.Email,
		Telefono:    co.Telefono,
		Direccion:   co.Direccion,
		Categoria:   co.Categoria,
		Descripcion: co.Descripcion,
		Logo:        co.Logo,
		CodigoQR:    co.CodigoQR,
	}
}

// GetComercios lista los comercios con paginación y filtro por categoría
func GetComercios(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.Comercio{})
	if categoria := c.Query("categoria"); categoria != "" {
		query = query.Where("categoria ILIKE ?", categoria)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var comercios []models.Comercio
	if err := query.Order("nombre asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comercios).Error; err != nil {
		response.ServerError(c)
		return
	}

	resultado := make([]dto.ComercioResponse, 0, len(comercios))
	for i := range comercios {
		resultado = append(resultado, comercioAResponse(&comercios[i]))
	}

	response.SuccessWithPagination(c, resultado, page, limit, int(total))
}

// GetComercioDetail devuelve un comercio con sus beneficios
func GetComercioDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var comercio models.Comercio
	if err := config.DB.Preload("Beneficios").First(&comercio, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, comercio)
}

// CreateComercio da de alta un comercio. El token QR de identidad se genera
// una sola vez en el alta y no cambia más.
func CreateComercio(c *gin.Context) {
	var input dto.CrearComercioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	hashedPassword, err := services.HashPassword(input.Password)
	if err != nil {
		response.ServerError(c)
		return
	}

	comercio := models.Comercio{
		Nombre:      input.Nombre,
		Email:       input.Email,
		Password:    hashedPassword,
		Telefono:    input.Telefono,
		Direccion:   input.Direccion,
		Categoria:   input.Categoria,
		Descripcion: input.Descripcion,
		CodigoQR:    services.NuevoTokenComercio(),
	}

	if err := config.DB.Create(&comercio).Error; err != nil {
		response.Conflict(c)
		return
	}

	response.Success(c, comercioAResponse(&comercio))
}

// UpdateComercio actualiza los datos editables de un comercio
func UpdateComercio(c *gin.Context) {
	var input dto.ActualizarComercioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var comercio models.Comercio
	if err := config.DB.First(&comercio, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if input.Nombre != "" {
		comercio.Nombre = input.Nombre
	}
	if input.Telefono != "" {
		comercio.Telefono = input.Telefono
	}
	if input.Direccion != "" {
		comercio.Direccion = input.Direccion
	}
	if input.Categoria != "" {
		comercio.Categoria = input.Categoria
	}
	if input.Descripcion != "" {
		comercio.Descripcion = input.Descripcion
	}

	if err := config.DB.Save(&comercio).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, comercioAResponse(&comercio))
}

// GetCodigoQRComercio genera el payload QR de mostrador del comercio
// autenticado (sin beneficio puntual: el socio elige en pantalla)
func GetCodigoQRComercio(c *gin.Context) {
	userID := c.GetUint("userID")

	var comercio models.Comercio
	if err := config.DB.First(&comercio, userID).Error; err != nil {
		response.NotFound(c)
		return
	}

	payload, err := services.GenerarCodigoQR(comercio.ID, nil)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"payload":  payload,
		"comercio": comercio.Nombre,
	})
}

// SolicitarAdhesion crea el vínculo pendiente comercio-asociación
func SolicitarAdhesion(c *gin.Context) {
	var input dto.SolicitarAdhesionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var existente models.Adhesion
	err := config.DB.Where("comercio_id = ? AND asociacion_id = ?",
		input.ComercioID, input.AsociacionID).First(&existente).Error
	if err == nil {
		response.Conflict(c)
		return
	}

	adhesion := models.Adhesion{
		ComercioID:   input.ComercioID,
		AsociacionID: input.AsociacionID,
		Estado:       constants.AdhesionPendiente,
	}

	if err := config.DB.Create(&adhesion).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, adhesion)
}

// TransicionAdhesion mueve una adhesión por su máquina de estados
func TransicionAdhesion(c *gin.Context) {
	var input dto.TransicionAdhesionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Datos inválidos")
		return
	}

	var adhesion models.Adhesion
	if err := config.DB.First(&adhesion, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	estado := models.GetAdhesionState(adhesion.Estado)

	var err error
	switch input.Accion {
	case "aprobar":
		err = estado.Aprobar(&adhesion)
	case "rechazar":
		err = estado.Rechazar(&adhesion)
	case "vincular":
		err = estado.Vincular(&adhesion)
	case "desvincular":
		err = estado.Desvincular(&adhesion)
	default:
		response.BadRequest(c, "Acción desconocida: "+input.Accion)
		return
	}
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Model(&adhesion).Update("estado", adhesion.Estado).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidarBeneficios(c)
	response.Success(c, adhesion)
}

// GetAdhesiones lista las adhesiones de un comercio o asociación
func GetAdhesiones(c *gin.Context) {
	query := config.DB.Preload("Comercio").Preload("Asociacion")

	if comercioID := c.Query("comercioId"); comercioID != "" {
		query = query.Where("comercio_id = ?", comercioID)
	}
	if asociacionID := c.Query("asociacionId"); asociacionID != "" {
		query = query.Where("asociacion_id = ?", asociacionID)
	}
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var adhesiones []models.Adhesion
	if err := query.Order("updated_at desc").Find(&adhesiones).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, adhesiones, len(adhesiones))
}

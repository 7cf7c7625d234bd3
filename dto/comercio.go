package dto

// ComercioResponse es el DTO de respuesta de un comercio
type ComercioResponse struct {
	ID          uint   `json:"id"`
	Nombre      string `json:"nombre"`
	Email       string `json:"email"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion"`
	Logo        string `json:"logo"`
	CodigoQR    string `json:"codigoQR"`
}

// CrearComercioRequest es el DTO de alta de comercio
type CrearComercioRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion"`
}

// ActualizarComercioRequest es el DTO de actualización de comercio
type ActualizarComercioRequest struct {
	ID          uint   `json:"id" binding:"required"`
	Nombre      string `json:"nombre"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion"`
}

// SolicitarAdhesionRequest es el DTO de solicitud de adhesión
type SolicitarAdhesionRequest struct {
	ComercioID   uint `json:"comercioId" binding:"required"`
	AsociacionID uint `json:"asociacionId" binding:"required"`
}

// TransicionAdhesionRequest es el DTO de las transiciones de una adhesión
type TransicionAdhesionRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Accion string `json:"accion" binding:"required"` // aprobar | rechazar | vincular | desvincular
}

package dto

// AsociacionResponse es el DTO de respuesta de una asociación
type AsociacionResponse struct {
	ID                uint    `json:"id"`
	Nombre            string  `json:"nombre"`
	Email             string  `json:"email"`
	Telefono          string  `json:"telefono"`
	Direccion         string  `json:"direccion"`
	Descripcion       string  `json:"descripcion"`
	Logo              string  `json:"logo"`
	TotalSocios       int     `json:"totalSocios"`
	SociosActivos     int     `json:"sociosActivos"`
	IngresosEstimados float64 `json:"ingresosEstimados"`
}

// CrearAsociacionRequest es el DTO de alta de asociación
type CrearAsociacionRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
	Descripcion string `json:"descripcion"`
}

// ActualizarAsociacionRequest es el DTO de actualización de asociación
type ActualizarAsociacionRequest struct {
	ID          uint   `json:"id" binding:"required"`
	Nombre      string `json:"nombre"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
	Descripcion string `json:"descripcion"`
}

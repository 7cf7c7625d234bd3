package dto

// ValidarCodigoRequest es el DTO del escaneo de un código en el comercio
type ValidarCodigoRequest struct {
	Payload     string  `json:"payload" binding:"required"`
	BeneficioID *uint   `json:"beneficioId,omitempty"`
	MontoBase   float64 `json:"montoBase"`
}

// ResultadoValidacionResponse es el resultado estructurado de una validación.
// El UI decide cómo presentarlo; los rechazos no son errores HTTP.
type ResultadoValidacionResponse struct {
	Estado         string  `json:"estado"`
	Motivo         string  `json:"motivo,omitempty"`
	Codigo         string  `json:"codigo,omitempty"`
	MontoDescuento float64 `json:"montoDescuento"`
	Beneficio      string  `json:"beneficio,omitempty"`
	Comercio       string  `json:"comercio,omitempty"`
	Socio          string  `json:"socio,omitempty"`
}

package dto

// RegisterRequest es el DTO de registro de usuario
type RegisterRequest struct {
	Nombre       string  `json:"nombre" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Telefono     string  `json:"telefono"`
	Rol          int     `json:"rol"`
	AsociacionID *uint   `json:"asociacionId,omitempty"`
	CuotaMensual float64 `json:"cuotaMensual"`
}

// LoginRequest es el DTO de inicio de sesión
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthRequest es el DTO del inicio de sesión con Google
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginResponse es el DTO de la sesión iniciada
type LoginResponse struct {
	Token  string `json:"token"`
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    int    `json:"rol"`
}

// CambiarPasswordRequest es el DTO de cambio de contraseña
type CambiarPasswordRequest struct {
	PasswordActual string `json:"passwordActual" binding:"required"`
	PasswordNueva  string `json:"passwordNueva" binding:"required,min=8"`
}

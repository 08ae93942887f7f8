package dto

import "time"

// CrearUsuarioRequest body para POST /api/usuarios.
type CrearUsuarioRequest struct {
	Codigo   string `json:"codigo" validate:"required,max=50"`
	Nombre   string `json:"nombre" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol,omitempty"`
}

// ActualizarUsuarioRequest body para PUT /api/usuarios/:id.
type ActualizarUsuarioRequest struct {
	Nombre *string `json:"nombre,omitempty"`
	Email  *string `json:"email,omitempty"`
	Rol    *string `json:"rol,omitempty"`
	Activo *bool   `json:"activo,omitempty"`
}

// CambiarPasswordRequest body para PATCH /api/usuarios/:id/password.
type CambiarPasswordRequest struct {
	PasswordActual string `json:"password_actual" validate:"required"`
	PasswordNueva  string `json:"password_nueva" validate:"required,min=8"`
}

// UsuarioResponse representación de un usuario en respuestas (sin hash).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Codigo    string    `json:"codigo"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Codigo   string `json:"codigo" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y usuario autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

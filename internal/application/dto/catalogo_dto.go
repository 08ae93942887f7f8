package dto

import "time"

// CrearCategoriaRequest body para POST /api/categorias.
type CrearCategoriaRequest struct {
	Codigo      string `json:"codigo" validate:"required,max=50"`
	Nombre      string `json:"nombre" validate:"required,max=255"`
	Descripcion string `json:"descripcion,omitempty" validate:"omitempty,max=255"`
}

// ActualizarCategoriaRequest body para PUT /api/categorias/:id.
type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
}

// CategoriaResponse representación de una categoría en respuestas.
type CategoriaResponse struct {
	ID          string    `json:"id"`
	Codigo      string    `json:"codigo"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CrearProveedorRequest body para POST /api/proveedores.
type CrearProveedorRequest struct {
	Ruc       string `json:"ruc" validate:"required,max=20"`
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono  string `json:"telefono,omitempty" validate:"omitempty,max=20"`
	Direccion string `json:"direccion,omitempty" validate:"omitempty,max=255"`
}

// ActualizarProveedorRequest body para PUT /api/proveedores/:id.
type ActualizarProveedorRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

// ProveedorResponse representación de un proveedor en respuestas.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	Ruc       string    `json:"ruc"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

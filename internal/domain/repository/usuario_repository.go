package repository

import (
	"context"

	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Usuario, error)
	Update(ctx context.Context, usuario *entity.Usuario) error
	List(ctx context.Context, limit, offset int) ([]*entity.Usuario, error)
}

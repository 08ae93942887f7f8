package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
)

// CategoriaUseCase casos de uso CRUD para categorías.
type CategoriaUseCase struct {
	repo repository.CategoriaRepository
}

func NewCategoriaUseCase(repo repository.CategoriaRepository) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo}
}

// Crear crea una categoría. El código es único sin distinguir mayúsculas.
func (uc *CategoriaUseCase) Crear(ctx context.Context, in dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	existing, err := uc.repo.GetByCodigo(ctx, in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.CodeDuplicate, "ya existe una categoría con código %s", in.Codigo)
	}

	now := time.Now()
	categoria := &entity.Categoria{
		ID:          uuid.New().String(),
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// Obtener devuelve una categoría por código.
func (uc *CategoriaUseCase) Obtener(ctx context.Context, codigo string) (*dto.CategoriaResponse, error) {
	categoria, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrCategoriaNotFound
	}
	return toCategoriaResponse(categoria), nil
}

// Actualizar actualiza una categoría. Campos nil no se modifican.
func (uc *CategoriaUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrCategoriaNotFound
	}
	if in.Nombre != nil {
		categoria.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		categoria.Descripcion = *in.Descripcion
	}
	if in.Activo != nil {
		categoria.Activo = *in.Activo
	}
	categoria.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// Listar lista categorías, opcionalmente solo las activas.
func (uc *CategoriaUseCase) Listar(ctx context.Context, soloActivas bool) ([]*dto.CategoriaResponse, error) {
	categorias, err := uc.repo.List(ctx, soloActivas)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoriaResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, toCategoriaResponse(c))
	}
	return out, nil
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Codigo:      c.Codigo,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

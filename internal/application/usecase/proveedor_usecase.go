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

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Crear crea un proveedor. El RUC es único.
func (uc *ProveedorUseCase) Crear(ctx context.Context, in dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	existing, err := uc.repo.GetByRuc(ctx, in.Ruc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.CodeDuplicate, "ya existe un proveedor con RUC %s", in.Ruc)
	}

	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:        uuid.New().String(),
		Ruc:       in.Ruc,
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// Obtener devuelve un proveedor por RUC.
func (uc *ProveedorUseCase) Obtener(ctx context.Context, ruc string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByRuc(ctx, ruc)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrProveedorNotFound
	}
	return toProveedorResponse(proveedor), nil
}

// Actualizar actualiza un proveedor. Campos nil no se modifican. El RUC es
// inmutable: identifica al proveedor en los movimientos históricos.
func (uc *ProveedorUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrProveedorNotFound
	}
	if in.Nombre != nil {
		proveedor.Nombre = *in.Nombre
	}
	if in.Email != nil {
		proveedor.Email = *in.Email
	}
	if in.Telefono != nil {
		proveedor.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		proveedor.Direccion = *in.Direccion
	}
	if in.Activo != nil {
		proveedor.Activo = *in.Activo
	}
	proveedor.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// Listar lista proveedores con paginación.
func (uc *ProveedorUseCase) Listar(ctx context.Context, soloActivos bool, page dto.PageRequest) ([]*dto.ProveedorResponse, error) {
	page.DefaultPage()
	proveedores, err := uc.repo.List(ctx, soloActivos, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProveedorResponse, 0, len(proveedores))
	for _, p := range proveedores {
		out = append(out, toProveedorResponse(p))
	}
	return out, nil
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID,
		Ruc:       p.Ruc,
		Nombre:    p.Nombre,
		Email:     p.Email,
		Telefono:  p.Telefono,
		Direccion: p.Direccion,
		Activo:    p.Activo,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

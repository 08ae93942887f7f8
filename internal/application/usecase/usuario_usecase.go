package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
)

// UsuarioUseCase casos de uso CRUD para usuarios. Las contraseñas se
// almacenan solo como hash bcrypt.
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
}

func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo}
}

// Crear crea un usuario. El código es único y el rol debe ser válido.
func (uc *UsuarioUseCase) Crear(ctx context.Context, in dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rol := in.Rol
	if rol == "" {
		rol = entity.RolVendedor
	}
	if rol != entity.RolAdmin && rol != entity.RolBodeguero && rol != entity.RolVendedor {
		return nil, domain.Errorf(domain.CodeInvalidInput, "rol inválido: %s", in.Rol)
	}

	existing, err := uc.repo.GetByCodigo(ctx, in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.CodeDuplicate, "ya existe un usuario con código %s", in.Codigo)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Codigo:       in.Codigo,
		Nombre:       in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Obtener devuelve un usuario por código.
func (uc *UsuarioUseCase) Obtener(ctx context.Context, codigo string) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	return toUsuarioResponse(usuario), nil
}

// Actualizar actualiza un usuario. Campos nil no se modifican.
func (uc *UsuarioUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if in.Nombre != nil {
		usuario.Nombre = *in.Nombre
	}
	if in.Email != nil {
		usuario.Email = *in.Email
	}
	if in.Rol != nil {
		if *in.Rol != entity.RolAdmin && *in.Rol != entity.RolBodeguero && *in.Rol != entity.RolVendedor {
			return nil, domain.Errorf(domain.CodeInvalidInput, "rol inválido: %s", *in.Rol)
		}
		usuario.Rol = *in.Rol
	}
	if in.Activo != nil {
		usuario.Activo = *in.Activo
	}
	usuario.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// CambiarPassword cambia la contraseña verificando primero la actual.
func (uc *UsuarioUseCase) CambiarPassword(ctx context.Context, id string, in dto.CambiarPasswordRequest) error {
	usuario, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.PasswordActual)); err != nil {
		return domain.NewError(domain.CodeUnauthorized, "contraseña actual incorrecta")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.PasswordNueva), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	usuario.PasswordHash = string(hash)
	usuario.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, usuario)
}

// Listar lista usuarios con paginación.
func (uc *UsuarioUseCase) Listar(ctx context.Context, page dto.PageRequest) ([]*dto.UsuarioResponse, error) {
	page.DefaultPage()
	usuarios, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, toUsuarioResponse(u))
	}
	return out, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Codigo:    u.Codigo,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

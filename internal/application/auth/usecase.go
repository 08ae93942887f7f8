package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/repository"
	"github.com/ergpos/inventario-api/pkg/config"
	"github.com/ergpos/inventario-api/pkg/jwt"
	"github.com/ergpos/inventario-api/pkg/logger"
)

// UseCase autenticación por código + contraseña con emisión de JWT.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      config.JWTConfig
	log         *logger.Logger
}

func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg, log: log}
}

// Login valida las credenciales y devuelve un token firmado. Credenciales
// incorrectas y usuario inexistente devuelven el mismo error para no filtrar
// qué códigos existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByCodigo(ctx, in.Codigo)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.NewError(domain.CodeUnauthorized, "credenciales inválidas")
	}
	if !usuario.Activo {
		return nil, domain.ErrUsuarioInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("codigo", in.Codigo).Msg("intento de login fallido")
		return nil, domain.NewError(domain.CodeUnauthorized, "credenciales inválidas")
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Codigo, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:        usuario.ID,
			Codigo:    usuario.Codigo,
			Nombre:    usuario.Nombre,
			Email:     usuario.Email,
			Rol:       usuario.Rol,
			Activo:    usuario.Activo,
			CreatedAt: usuario.CreatedAt,
			UpdatedAt: usuario.UpdatedAt,
		},
	}, nil
}

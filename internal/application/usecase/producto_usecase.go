package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
)

// precioMaximo tope defensivo para detectar precios mal digitados.
var precioMaximo = decimal.NewFromInt(1_000_000)

// ProductoUseCase casos de uso CRUD para productos. El stock no se modifica
// por aquí: toda mutación de stock pasa por el motor de movimientos.
type ProductoUseCase struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, categoriaRepo: categoriaRepo}
}

// Crear crea un producto. El código debe ser único y la categoría existir y
// estar activa.
func (uc *ProductoUseCase) Crear(ctx context.Context, in dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if err := validarPrecio(in.Precio); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByCodigo(ctx, in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.CodeDuplicate, "ya existe un producto con código %s", in.Codigo)
	}

	categoria, err := uc.categoriaRepo.GetByCodigo(ctx, in.CodigoCategoria)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrCategoriaNotFound
	}
	if !categoria.Activo {
		return nil, domain.ErrCategoriaInactive
	}

	unidad := in.UnidadMedida
	if unidad == "" {
		unidad = "UNIDAD"
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:           uuid.New().String(),
		Codigo:       in.Codigo,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		CategoriaID:  &categoria.ID,
		Precio:       in.Precio,
		StockMinimo:  in.StockMinimo,
		StockActual:  in.StockInicial,
		UnidadMedida: unidad,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Obtener devuelve un producto por código.
func (uc *ProductoUseCase) Obtener(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNotFound
	}
	return toProductoResponse(producto), nil
}

// Actualizar actualiza los campos de catálogo de un producto. No permite
// modificar el stock (se maneja vía movimientos).
func (uc *ProductoUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNotFound
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.CodigoCategoria != nil {
		categoria, err := uc.categoriaRepo.GetByCodigo(ctx, *in.CodigoCategoria)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, domain.ErrCategoriaNotFound
		}
		if !categoria.Activo {
			return nil, domain.ErrCategoriaInactive
		}
		producto.CategoriaID = &categoria.ID
	}
	if in.Precio != nil {
		if err := validarPrecio(*in.Precio); err != nil {
			return nil, err
		}
		producto.Precio = *in.Precio
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.NewError(domain.CodeInvalidInput, "el stock mínimo no puede ser negativo")
		}
		producto.StockMinimo = *in.StockMinimo
	}
	if in.UnidadMedida != nil {
		producto.UnidadMedida = *in.UnidadMedida
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Listar lista productos con paginación.
func (uc *ProductoUseCase) Listar(ctx context.Context, soloActivos bool, page dto.PageRequest) ([]*dto.ProductoResponse, error) {
	page.DefaultPage()
	productos, err := uc.repo.List(ctx, soloActivos, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductoResponses(productos), nil
}

// ListarStockBajo lista productos activos en o bajo el umbral de alerta.
func (uc *ProductoUseCase) ListarStockBajo(ctx context.Context) ([]*dto.ProductoResponse, error) {
	productos, err := uc.repo.ListStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	return toProductoResponses(productos), nil
}

// VerificarStock consulta si hay stock disponible para una cantidad. Es una
// lectura optimista: el motor re-valida bajo el lock al registrar la salida.
func (uc *ProductoUseCase) VerificarStock(ctx context.Context, codigo string, cantidad int) (*dto.VerificacionStockResponse, error) {
	if cantidad <= 0 {
		return nil, domain.NewError(domain.CodeInvalidInput, "la cantidad debe ser mayor a 0")
	}
	producto, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNotFound
	}
	return &dto.VerificacionStockResponse{
		Codigo:      producto.Codigo,
		StockActual: producto.StockActual,
		Solicitado:  cantidad,
		Disponible:  producto.StockActual >= cantidad,
	}, nil
}

func validarPrecio(precio decimal.Decimal) error {
	if !precio.GreaterThan(decimal.Zero) {
		return domain.NewError(domain.CodeInvalidInput, "el precio debe ser mayor a 0")
	}
	if precio.GreaterThan(precioMaximo) {
		return domain.NewError(domain.CodeInvalidInput, "el precio no puede ser mayor a 1,000,000")
	}
	return nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID,
		Codigo:       p.Codigo,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		CategoriaID:  p.CategoriaID,
		Precio:       p.Precio,
		StockMinimo:  p.StockMinimo,
		StockActual:  p.StockActual,
		UnidadMedida: p.UnidadMedida,
		Activo:       p.Activo,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductoResponses(productos []*entity.Producto) []*dto.ProductoResponse {
	out := make([]*dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, toProductoResponse(p))
	}
	return out
}

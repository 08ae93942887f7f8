package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/application/usecase"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// Fakes mínimos en memoria para el CRUD de productos.

type memProductoRepo struct {
	porID map[string]*entity.Producto
}

func newMemProductoRepo() *memProductoRepo {
	return &memProductoRepo{porID: map[string]*entity.Producto{}}
}

func (r *memProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	cp := *p
	r.porID[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	if p, ok := r.porID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductoRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Producto, error) {
	for _, p := range r.porID {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductoRepo) GetByCodigoForUpdate(ctx context.Context, codigo string) (*entity.Producto, error) {
	return r.GetByCodigo(ctx, codigo)
}

func (r *memProductoRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	cp := *p
	r.porID[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) UpdateStock(_ context.Context, id string, stockActual int) error {
	r.porID[id].StockActual = stockActual
	return nil
}

func (r *memProductoRepo) List(_ context.Context, soloActivos bool, _, _ int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.porID {
		if soloActivos && !p.Activo {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductoRepo) ListStockBajo(_ context.Context) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.porID {
		if p.Activo && p.StockBajo() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memCategoriaRepo struct {
	porID map[string]*entity.Categoria
}

func (r *memCategoriaRepo) Create(_ context.Context, c *entity.Categoria) error {
	r.porID[c.ID] = c
	return nil
}

func (r *memCategoriaRepo) GetByID(_ context.Context, id string) (*entity.Categoria, error) {
	return r.porID[id], nil
}

func (r *memCategoriaRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Categoria, error) {
	for _, c := range r.porID {
		if c.Codigo == codigo {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCategoriaRepo) Update(_ context.Context, c *entity.Categoria) error {
	r.porID[c.ID] = c
	return nil
}

func (r *memCategoriaRepo) List(_ context.Context, _ bool) ([]*entity.Categoria, error) {
	return nil, nil
}

func newProductoFixture() (*memProductoRepo, *usecase.ProductoUseCase) {
	productos := newMemProductoRepo()
	categorias := &memCategoriaRepo{porID: map[string]*entity.Categoria{
		"c1": {ID: "c1", Codigo: "ABARROTES", Nombre: "Abarrotes", Activo: true},
		"c2": {ID: "c2", Codigo: "DESCONTINUADA", Nombre: "Vieja", Activo: false},
	}}
	return productos, usecase.NewProductoUseCase(productos, categorias)
}

func TestProductoCrear(t *testing.T) {
	_, uc := newProductoFixture()

	out, err := uc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:          "PRD-001",
		Nombre:          "Arroz 1kg",
		CodigoCategoria: "ABARROTES",
		Precio:          decimal.NewFromFloat(4.50),
		StockMinimo:     10,
		StockInicial:    100,
	})
	require.NoError(t, err)
	assert.Equal(t, "PRD-001", out.Codigo)
	assert.Equal(t, 100, out.StockActual)
	assert.True(t, out.Activo)
	assert.Equal(t, "UNIDAD", out.UnidadMedida, "unidad por defecto")
}

func TestProductoCrear_CodigoDuplicado(t *testing.T) {
	_, uc := newProductoFixture()
	in := dto.CrearProductoRequest{
		Codigo:          "PRD-001",
		Nombre:          "Arroz 1kg",
		CodigoCategoria: "ABARROTES",
		Precio:          decimal.NewFromFloat(4.50),
	}
	_, err := uc.Crear(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Crear(context.Background(), in)
	var bizErr *domain.Error
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeDuplicate, bizErr.Code)
}

func TestProductoCrear_PrecioInvalido(t *testing.T) {
	_, uc := newProductoFixture()

	for _, precio := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-1),
		decimal.NewFromInt(1_000_001),
	} {
		_, err := uc.Crear(context.Background(), dto.CrearProductoRequest{
			Codigo:          "PRD-X",
			Nombre:          "X",
			CodigoCategoria: "ABARROTES",
			Precio:          precio,
		})
		var bizErr *domain.Error
		require.ErrorAs(t, err, &bizErr, "precio %s debe rechazarse", precio)
		assert.Equal(t, domain.CodeInvalidInput, bizErr.Code)
	}
}

func TestProductoCrear_CategoriaInvalida(t *testing.T) {
	_, uc := newProductoFixture()

	_, err := uc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo: "PRD-X", Nombre: "X", CodigoCategoria: "NO-EXISTE",
		Precio: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrCategoriaNotFound)

	_, err = uc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo: "PRD-X", Nombre: "X", CodigoCategoria: "DESCONTINUADA",
		Precio: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrCategoriaInactive)
}

func TestProductoActualizar_NoTocaStock(t *testing.T) {
	repo, uc := newProductoFixture()
	out, err := uc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:          "PRD-001",
		Nombre:          "Arroz 1kg",
		CodigoCategoria: "ABARROTES",
		Precio:          decimal.NewFromFloat(4.50),
		StockInicial:    42,
	})
	require.NoError(t, err)

	nuevoNombre := "Arroz extra 1kg"
	actualizado, err := uc.Actualizar(context.Background(), out.ID, dto.ActualizarProductoRequest{
		Nombre: &nuevoNombre,
	})
	require.NoError(t, err)
	assert.Equal(t, nuevoNombre, actualizado.Nombre)
	assert.Equal(t, 42, repo.porID[out.ID].StockActual,
		"la actualización de catálogo no puede mutar el contador de stock")
}

func TestProductoVerificarStock(t *testing.T) {
	_, uc := newProductoFixture()
	_, err := uc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:          "PRD-001",
		Nombre:          "Arroz 1kg",
		CodigoCategoria: "ABARROTES",
		Precio:          decimal.NewFromFloat(4.50),
		StockInicial:    10,
	})
	require.NoError(t, err)

	out, err := uc.VerificarStock(context.Background(), "PRD-001", 10)
	require.NoError(t, err)
	assert.True(t, out.Disponible, "el stock exacto cuenta como disponible")

	out, err = uc.VerificarStock(context.Background(), "PRD-001", 11)
	require.NoError(t, err)
	assert.False(t, out.Disponible)

	_, err = uc.VerificarStock(context.Background(), "PRD-001", 0)
	var bizErr *domain.Error
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeInvalidInput, bizErr.Code)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ergpos/inventario-api/internal/application/auth"
	"github.com/ergpos/inventario-api/internal/application/inventory"
	"github.com/ergpos/inventario-api/internal/application/usecase"
	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovimientoUC *inventory.MovimientoUseCase
	ProductoUC   *usecase.ProductoUseCase
	CategoriaUC  *usecase.CategoriaUseCase
	ProveedorUC  *usecase.ProveedorUseCase
	UsuarioUC    *usecase.UsuarioUseCase
	AuditoriaUC  *usecase.AuditoriaUseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos: el motor de inventario
	movimientos := protected.Group("/movimientos")
	movimientoHandler := NewMovimientoHandler(deps.MovimientoUC)
	movimientos.Post("/", movimientoHandler.Crear)
	movimientos.Get("/", movimientoHandler.Listar)
	movimientos.Get("/consistencia/:codigo", movimientoHandler.VerificarConsistencia)
	movimientos.Get("/:id", movimientoHandler.Obtener)
	movimientos.Patch("/:id/anular", movimientoHandler.Anular)
	movimientos.Patch("/:id/activar", movimientoHandler.Activar)

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Crear)
	productos.Get("/", productoHandler.Listar)
	productos.Get("/stock-bajo", productoHandler.ListarStockBajo)
	productos.Get("/:codigo", productoHandler.Obtener)
	productos.Get("/:codigo/stock", productoHandler.VerificarStock)
	productos.Put("/:id", productoHandler.Actualizar)

	// Categorías
	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Post("/", categoriaHandler.Crear)
	categorias.Get("/", categoriaHandler.Listar)
	categorias.Get("/:codigo", categoriaHandler.Obtener)
	categorias.Put("/:id", categoriaHandler.Actualizar)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Crear)
	proveedores.Get("/", proveedorHandler.Listar)
	proveedores.Get("/:ruc", proveedorHandler.Obtener)
	proveedores.Put("/:id", proveedorHandler.Actualizar)

	// Usuarios (solo admin)
	usuarios := protected.Group("/usuarios", RequireRol(entity.RolAdmin))
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Post("/", usuarioHandler.Crear)
	usuarios.Get("/", usuarioHandler.Listar)
	usuarios.Get("/:codigo", usuarioHandler.Obtener)
	usuarios.Put("/:id", usuarioHandler.Actualizar)
	usuarios.Patch("/:id/password", usuarioHandler.CambiarPassword)

	// Auditoría (lecturas para todos los autenticados; purga solo admin)
	auditoria := protected.Group("/auditoria")
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)
	auditoria.Get("/", auditoriaHandler.Buscar)
	auditoria.Get("/conteo/:evento", auditoriaHandler.ContarPorEvento)
	auditoria.Get("/registro/:tabla/:registro_id", auditoriaHandler.HistorialRegistro)
	auditoria.Get("/:id", auditoriaHandler.Obtener)
	auditoria.Delete("/", RequireRol(entity.RolAdmin), auditoriaHandler.PurgarAntiguos)
}

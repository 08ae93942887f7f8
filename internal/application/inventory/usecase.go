package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
	"github.com/ergpos/inventario-api/pkg/logger"
)

// TablaMovimientos nombre de la tabla auditada por el motor.
const TablaMovimientos = "movimientos_inventario"

// MovimientoUseCase es el motor de movimientos de inventario: registra
// entradas y salidas, y gobierna el ciclo de vida PENDIENTE → ACTIVO → ANULADO.
//
// Toda mutación de stock ocurre dentro de una transacción con la fila del
// producto bloqueada (SELECT FOR UPDATE): ese lock es el único punto de
// sincronización entre escritores concurrentes del mismo producto. Las
// validaciones baratas (enums, resolución de referencias) corren antes del
// lock; las que dependen del stock se repiten bajo el lock, porque el estado
// pudo cambiar entre la lectura optimista y la adquisición.
type MovimientoUseCase struct {
	txRunner       TxRunner
	movimientoRepo repository.MovimientoRepository
	productoRepo   repository.ProductoRepository
	usuarioRepo    repository.UsuarioRepository
	proveedorRepo  repository.ProveedorRepository
	log            *logger.Logger
}

// NewMovimientoUseCase construye el motor. Los repositorios recibidos aquí
// van atados al pool y se usan solo para lecturas fuera de transacción; las
// escrituras usan los repos que TxRunner ata a cada transacción.
func NewMovimientoUseCase(
	txRunner TxRunner,
	movimientoRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	usuarioRepo repository.UsuarioRepository,
	proveedorRepo repository.ProveedorRepository,
	log *logger.Logger,
) *MovimientoUseCase {
	return &MovimientoUseCase{
		txRunner:       txRunner,
		movimientoRepo: movimientoRepo,
		productoRepo:   productoRepo,
		usuarioRepo:    usuarioRepo,
		proveedorRepo:  proveedorRepo,
		log:            log,
	}
}

// Crear registra un movimiento de inventario.
//
// Orden del algoritmo: enums y referencias primero (sin lock, para fallar
// barato y minimizar el tiempo de lock), luego lock de la fila del producto,
// re-validación de stock bajo el lock, mutación del contador, persistencia
// del movimiento y auditoría — todo en una transacción. Cualquier fallo
// posterior al lock revierte todo: ni stock mutado, ni movimiento huérfano,
// ni auditoría de un intento fallido.
func (uc *MovimientoUseCase) Crear(ctx context.Context, in dto.CrearMovimientoRequest) (*dto.MovimientoResponse, error) {
	tipo, err := entity.ParseTipoMovimiento(in.Tipo)
	if err != nil {
		return nil, err
	}

	estado := entity.EstadoActivo
	if in.Estado != "" {
		estado, err = entity.ParseEstadoMovimiento(in.Estado)
		if err != nil {
			return nil, err
		}
		// ANULADO es terminal: no es un estado inicial válido.
		if estado == entity.EstadoAnulado {
			return nil, domain.NewError(domain.CodeInvalidEstado,
				"estado inicial inválido. Debe ser ACTIVO o PENDIENTE")
		}
	}

	if in.Cantidad <= 0 {
		return nil, domain.NewError(domain.CodeInvalidInput, "la cantidad debe ser mayor a 0")
	}

	usuario, err := uc.usuarioRepo.GetByCodigo(ctx, in.CodigoUsuario)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if !usuario.Activo {
		return nil, domain.ErrUsuarioInactive
	}

	var proveedorID *string
	if in.RucProveedor != "" {
		proveedor, err := uc.proveedorRepo.GetByRuc(ctx, in.RucProveedor)
		if err != nil {
			return nil, err
		}
		if proveedor == nil {
			return nil, domain.ErrProveedorNotFound
		}
		if !proveedor.Activo {
			return nil, domain.ErrProveedorInactive
		}
		proveedorID = &proveedor.ID
	}

	now := time.Now()
	mov := &entity.MovimientoInventario{
		ID:            uuid.New().String(),
		Tipo:          tipo,
		Cantidad:      in.Cantidad,
		ProveedorID:   proveedorID,
		UsuarioID:     usuario.ID,
		Observacion:   in.Observacion,
		DocumentoRef:  in.DocumentoRef,
		CostoUnitario: in.CostoUnitario,
		Fecha:         now,
		CreatedAt:     now,
		Estado:        estado,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		auditRepo repository.AuditoriaRepository,
	) error {
		// Lock exclusivo de la fila del producto. A partir de aquí ningún otro
		// escritor puede mutar el stock hasta Commit/Rollback.
		producto, err := productoRepo.GetByCodigoForUpdate(ctx, in.CodigoProducto)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrProductoNotFound
		}

		// Re-validación bajo lock: una verificación previa al lock no protege
		// contra un segundo escritor que cambió el stock entre lectura y lock.
		if estado == entity.EstadoActivo && tipo == entity.TipoSalida {
			if producto.StockActual < in.Cantidad {
				return &domain.StockInsuficienteError{
					Disponible: producto.StockActual,
					Solicitado: in.Cantidad,
				}
			}
		}
		if !producto.Activo {
			return domain.ErrProductoInactive
		}

		mov.ProductoID = producto.ID

		if estado == entity.EstadoActivo {
			if err := productoRepo.UpdateStock(ctx, producto.ID, producto.StockActual+mov.EfectoStock()); err != nil {
				return err
			}
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return auditRepo.Create(ctx, &entity.RegistroAuditoria{
			EventoTipo:  entity.EventoInsert,
			TablaNombre: TablaMovimientos,
			RegistroID:  mov.ID,
			UsuarioID:   &usuario.ID,
			Detalle: detalleJSON(map[string]any{
				"accion":   "crear",
				"tipo":     string(tipo),
				"producto": producto.Codigo,
				"cantidad": in.Cantidad,
				"estado":   string(estado),
			}),
			CreatedAt: now,
		})
	})
	if err != nil {
		if stockErr, ok := errAsStockInsuficiente(err); ok {
			uc.log.Warn().
				Str("producto", in.CodigoProducto).
				Int("disponible", stockErr.Disponible).
				Int("solicitado", stockErr.Solicitado).
				Msg("movimiento rechazado por stock insuficiente")
		}
		return nil, err
	}

	uc.log.Info().
		Str("movimiento", mov.ID).
		Str("tipo", string(tipo)).
		Str("producto", in.CodigoProducto).
		Int("cantidad", in.Cantidad).
		Str("estado", string(estado)).
		Msg("movimiento registrado")

	return toMovimientoResponse(mov), nil
}

func toMovimientoResponse(m *entity.MovimientoInventario) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID,
		ProductoID:    m.ProductoID,
		Tipo:          string(m.Tipo),
		Cantidad:      m.Cantidad,
		ProveedorID:   m.ProveedorID,
		UsuarioID:     m.UsuarioID,
		Observacion:   m.Observacion,
		DocumentoRef:  m.DocumentoRef,
		CostoUnitario: m.CostoUnitario,
		Fecha:         m.Fecha,
		Estado:        string(m.Estado),
		CreatedAt:     m.CreatedAt,
	}
}

// detalleJSON serializa el detalle de auditoría; ante un fallo improbable de
// marshal degrada a un JSON mínimo en vez de abortar la transacción.
func detalleJSON(v map[string]any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"detalle":%q}`, fmt.Sprint(v))
	}
	return string(b)
}

func errAsStockInsuficiente(err error) (*domain.StockInsuficienteError, bool) {
	var stockErr *domain.StockInsuficienteError
	return stockErr, errors.As(err, &stockErr)
}

package inventory

import (
	"context"
	"time"

	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"

	"github.com/ergpos/inventario-api/internal/application/dto"
)

// Anular revierte un movimiento ACTIVO y lo pasa a ANULADO (estado terminal).
//
// La reversión resta lo que sumó una ENTRADA y suma lo que restó una SALIDA.
// Si la resta dejaría el stock negativo — señal de que el contador bajó por
// otra vía después de la entrada original — falla con NEGATIVE_STOCK y no
// muta nada.
func (uc *MovimientoUseCase) Anular(ctx context.Context, id string) (*dto.MovimientoResponse, error) {
	// Chequeo optimista fuera del lock para fallar barato; se repite dentro.
	mov, err := uc.movimientoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovimientoNotFound
	}
	if !mov.PuedeAnular() {
		return nil, domain.NewError(domain.CodeInvalidMovementState,
			"solo se pueden anular movimientos ACTIVOS")
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		auditRepo repository.AuditoriaRepository,
	) error {
		// Lock fresco de la fila del producto: pudo mutar desde que el
		// movimiento se creó.
		producto, err := productoRepo.GetByIDForUpdate(ctx, mov.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrProductoNotFound
		}

		// Releer el movimiento bajo el lock: toda transición pasa por el lock
		// del producto, así que aquí el estado ya no puede cambiar debajo
		// nuestro y dos anulaciones concurrentes producen un solo ganador.
		mov, err = movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovimientoNotFound
		}
		if !mov.PuedeAnular() {
			return domain.NewError(domain.CodeInvalidMovementState,
				"solo se pueden anular movimientos ACTIVOS")
		}

		nuevoStock := producto.StockActual - mov.EfectoStock()
		if nuevoStock < 0 {
			return domain.Errorf(domain.CodeNegativeStock,
				"no se puede anular: el stock quedaría negativo (actual %d, reversión %d)",
				producto.StockActual, -mov.EfectoStock())
		}

		if err := productoRepo.UpdateStock(ctx, producto.ID, nuevoStock); err != nil {
			return err
		}
		if err := movRepo.UpdateEstado(ctx, mov.ID, entity.EstadoAnulado); err != nil {
			return err
		}
		mov.Estado = entity.EstadoAnulado

		// La auditoría se fecha en el momento de la transición, no en la
		// fecha de efecto del movimiento original.
		return auditRepo.Create(ctx, &entity.RegistroAuditoria{
			EventoTipo:  entity.EventoUpdate,
			TablaNombre: TablaMovimientos,
			RegistroID:  mov.ID,
			UsuarioID:   &mov.UsuarioID,
			Detalle: detalleJSON(map[string]any{
				"accion":   "anular",
				"tipo":     string(mov.Tipo),
				"cantidad": mov.Cantidad,
			}),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movimiento", mov.ID).
		Str("producto", mov.ProductoID).
		Msg("movimiento anulado, stock revertido")

	return toMovimientoResponse(mov), nil
}

// Activar promueve un movimiento PENDIENTE a ACTIVO aplicando ahora su efecto
// de stock. Para salidas el stock se verifica bajo el lock; si no alcanza, el
// movimiento queda PENDIENTE y nada muta.
func (uc *MovimientoUseCase) Activar(ctx context.Context, id string) (*dto.MovimientoResponse, error) {
	mov, err := uc.movimientoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovimientoNotFound
	}
	if !mov.PuedeActivar() {
		return nil, domain.NewError(domain.CodeInvalidMovementState,
			"solo se pueden activar movimientos PENDIENTES")
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		auditRepo repository.AuditoriaRepository,
	) error {
		producto, err := productoRepo.GetByIDForUpdate(ctx, mov.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrProductoNotFound
		}

		mov, err = movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovimientoNotFound
		}
		if !mov.PuedeActivar() {
			return domain.NewError(domain.CodeInvalidMovementState,
				"solo se pueden activar movimientos PENDIENTES")
		}

		if mov.EsSalida() && producto.StockActual < mov.Cantidad {
			return &domain.StockInsuficienteError{
				Disponible: producto.StockActual,
				Solicitado: mov.Cantidad,
			}
		}

		if err := productoRepo.UpdateStock(ctx, producto.ID, producto.StockActual+mov.EfectoStock()); err != nil {
			return err
		}
		if err := movRepo.UpdateEstado(ctx, mov.ID, entity.EstadoActivo); err != nil {
			return err
		}
		mov.Estado = entity.EstadoActivo

		return auditRepo.Create(ctx, &entity.RegistroAuditoria{
			EventoTipo:  entity.EventoUpdate,
			TablaNombre: TablaMovimientos,
			RegistroID:  mov.ID,
			UsuarioID:   &mov.UsuarioID,
			Detalle: detalleJSON(map[string]any{
				"accion":   "activar",
				"tipo":     string(mov.Tipo),
				"cantidad": mov.Cantidad,
			}),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movimiento", mov.ID).
		Str("producto", mov.ProductoID).
		Msg("movimiento pendiente activado, stock aplicado")

	return toMovimientoResponse(mov), nil
}

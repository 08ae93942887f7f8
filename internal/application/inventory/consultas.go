package inventory

import (
	"context"
	"time"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
)

// Obtener devuelve un movimiento por ID.
func (uc *MovimientoUseCase) Obtener(ctx context.Context, id string) (*dto.MovimientoResponse, error) {
	mov, err := uc.movimientoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovimientoNotFound
	}
	return toMovimientoResponse(mov), nil
}

// Listar busca movimientos con filtros dinámicos. Los filtros llegan como
// códigos de negocio (código de producto/usuario, RUC de proveedor) y se
// resuelven a IDs antes de consultar. Solo lectura, sin locks.
func (uc *MovimientoUseCase) Listar(ctx context.Context, q dto.ListarMovimientosQuery) ([]*dto.MovimientoResponse, error) {
	filtro := repository.FiltroMovimientos{}

	if q.Tipo != "" {
		tipo, err := entity.ParseTipoMovimiento(q.Tipo)
		if err != nil {
			return nil, err
		}
		filtro.Tipo = &tipo
	}
	if q.Estado != "" {
		estado, err := entity.ParseEstadoMovimiento(q.Estado)
		if err != nil {
			return nil, err
		}
		filtro.Estado = &estado
	}

	if q.CodigoProducto != "" {
		producto, err := uc.productoRepo.GetByCodigo(ctx, q.CodigoProducto)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrProductoNotFound
		}
		filtro.ProductoID = producto.ID
	}
	if q.CodigoUsuario != "" {
		usuario, err := uc.usuarioRepo.GetByCodigo(ctx, q.CodigoUsuario)
		if err != nil {
			return nil, err
		}
		if usuario == nil {
			return nil, domain.ErrUsuarioNotFound
		}
		filtro.UsuarioID = usuario.ID
	}
	if q.RucProveedor != "" {
		proveedor, err := uc.proveedorRepo.GetByRuc(ctx, q.RucProveedor)
		if err != nil {
			return nil, err
		}
		if proveedor == nil {
			return nil, domain.ErrProveedorNotFound
		}
		filtro.ProveedorID = proveedor.ID
	}

	now := time.Now()
	filtro.Desde = now.AddDate(-1, 0, 0)
	filtro.Hasta = now
	if q.Desde != "" {
		desde, err := time.Parse(time.RFC3339, q.Desde)
		if err != nil {
			return nil, domain.NewError(domain.CodeInvalidInput, "fecha 'desde' inválida (RFC 3339)")
		}
		filtro.Desde = desde
	}
	if q.Hasta != "" {
		hasta, err := time.Parse(time.RFC3339, q.Hasta)
		if err != nil {
			return nil, domain.NewError(domain.CodeInvalidInput, "fecha 'hasta' inválida (RFC 3339)")
		}
		filtro.Hasta = hasta
	}
	if filtro.Desde.After(filtro.Hasta) {
		return nil, domain.NewError(domain.CodeInvalidDateRange,
			"la fecha inicial no puede ser mayor a la fecha final")
	}

	q.DefaultPage()
	filtro.Limit = q.Limit
	filtro.Offset = q.Offset

	movs, err := uc.movimientoRepo.Buscar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovimientoResponse(m))
	}
	return out, nil
}

// VerificarConsistencia compara el contador de stock de un producto contra la
// suma de efectos de sus movimientos ACTIVOS. Es un chequeo defensivo de solo
// lectura: el contador no se deriva del libro, así que una escritura fuera
// del motor puede desincronizarlos. Nunca bloquea ni corrige.
func (uc *MovimientoUseCase) VerificarConsistencia(ctx context.Context, codigoProducto string) (*dto.ConsistenciaResponse, error) {
	producto, err := uc.productoRepo.GetByCodigo(ctx, codigoProducto)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNotFound
	}

	suma, err := uc.movimientoRepo.SumEfectosActivos(ctx, producto.ID)
	if err != nil {
		return nil, err
	}

	res := &dto.ConsistenciaResponse{
		ProductoID:      producto.ID,
		CodigoProducto:  producto.Codigo,
		StockActual:     producto.StockActual,
		SumaMovimientos: suma,
		Consistente:     producto.StockActual == suma,
	}
	if !res.Consistente {
		uc.log.Warn().
			Str("producto", producto.Codigo).
			Int("stock_actual", producto.StockActual).
			Int("suma_movimientos", suma).
			Msg("contador de stock desincronizado del libro de movimientos")
	}
	return res, nil
}

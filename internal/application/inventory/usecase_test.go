package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/application/inventory"
	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
	"github.com/ergpos/inventario-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula el comportamiento relevante de PostgreSQL para el motor:
// los métodos ForUpdate adquieren un lock exclusivo que vive hasta el fin de
// la "transacción" (el Run del fakeTxRunner), igual que SELECT ... FOR UPDATE.
// Las validaciones previas al lock corren concurrentes; la sección crítica
// queda serializada.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	dataMu      sync.RWMutex
	lockMu      sync.Mutex // emula el lock de fila de productos
	productos   map[string]*entity.Producto
	movimientos map[string]*entity.MovimientoInventario
	usuarios    map[string]*entity.Usuario
	proveedores map[string]*entity.Proveedor
	auditorias  []*entity.RegistroAuditoria
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		productos:   map[string]*entity.Producto{},
		movimientos: map[string]*entity.MovimientoInventario{},
		usuarios:    map[string]*entity.Usuario{},
		proveedores: map[string]*entity.Proveedor{},
	}
}

// lockState marca si la transacción en curso ya posee el lock de fila.
type lockState struct {
	held bool
}

func (s *fakeStore) acquire(l *lockState) {
	if l != nil && !l.held {
		s.lockMu.Lock()
		l.held = true
	}
}

// ── ProductoRepository ────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	s    *fakeStore
	lock *lockState // nil: repo atado al pool, sin capacidad de lock
}

func (r *fakeProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	cp := *p
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *fakeProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	if p, ok := r.s.productos[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductoRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Producto, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	for _, p := range r.s.productos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductoRepo) GetByCodigoForUpdate(ctx context.Context, codigo string) (*entity.Producto, error) {
	r.s.acquire(r.lock)
	return r.GetByCodigo(ctx, codigo)
}

func (r *fakeProductoRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	r.s.acquire(r.lock)
	return r.GetByID(ctx, id)
}

func (r *fakeProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	cp := *p
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *fakeProductoRepo) UpdateStock(_ context.Context, id string, stockActual int) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	r.s.productos[id].StockActual = stockActual
	return nil
}

func (r *fakeProductoRepo) List(_ context.Context, _ bool, _, _ int) ([]*entity.Producto, error) {
	return nil, nil
}

func (r *fakeProductoRepo) ListStockBajo(_ context.Context) ([]*entity.Producto, error) {
	return nil, nil
}

// ── MovimientoRepository ──────────────────────────────────────────────────────

type fakeMovimientoRepo struct {
	s *fakeStore
}

func (r *fakeMovimientoRepo) Create(_ context.Context, m *entity.MovimientoInventario) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	cp := *m
	r.s.movimientos[m.ID] = &cp
	return nil
}

func (r *fakeMovimientoRepo) GetByID(_ context.Context, id string) (*entity.MovimientoInventario, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	if m, ok := r.s.movimientos[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMovimientoRepo) UpdateEstado(_ context.Context, id string, estado entity.EstadoMovimiento) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	r.s.movimientos[id].Estado = estado
	return nil
}

func (r *fakeMovimientoRepo) Buscar(_ context.Context, _ repository.FiltroMovimientos) ([]*entity.MovimientoInventario, error) {
	return nil, nil
}

func (r *fakeMovimientoRepo) SumEfectosActivos(_ context.Context, productoID string) (int, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	suma := 0
	for _, m := range r.s.movimientos {
		if m.ProductoID == productoID && m.Estado == entity.EstadoActivo {
			suma += m.EfectoStock()
		}
	}
	return suma, nil
}

// ── UsuarioRepository / ProveedorRepository ──────────────────────────────────

type fakeUsuarioRepo struct{ s *fakeStore }

func (r *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	r.s.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	return r.s.usuarios[id], nil
}

func (r *fakeUsuarioRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Usuario, error) {
	for _, u := range r.s.usuarios {
		if u.Codigo == codigo {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	r.s.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) List(_ context.Context, _, _ int) ([]*entity.Usuario, error) {
	return nil, nil
}

type fakeProveedorRepo struct{ s *fakeStore }

func (r *fakeProveedorRepo) Create(_ context.Context, p *entity.Proveedor) error {
	r.s.proveedores[p.ID] = p
	return nil
}

func (r *fakeProveedorRepo) GetByID(_ context.Context, id string) (*entity.Proveedor, error) {
	return r.s.proveedores[id], nil
}

func (r *fakeProveedorRepo) GetByRuc(_ context.Context, ruc string) (*entity.Proveedor, error) {
	for _, p := range r.s.proveedores {
		if p.Ruc == ruc {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProveedorRepo) Update(_ context.Context, p *entity.Proveedor) error {
	r.s.proveedores[p.ID] = p
	return nil
}

func (r *fakeProveedorRepo) List(_ context.Context, _ bool, _, _ int) ([]*entity.Proveedor, error) {
	return nil, nil
}

// ── AuditoriaRepository ──────────────────────────────────────────────────────

type fakeAuditoriaRepo struct{ s *fakeStore }

func (r *fakeAuditoriaRepo) Create(_ context.Context, reg *entity.RegistroAuditoria) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	cp := *reg
	cp.ID = int64(len(r.s.auditorias) + 1)
	r.s.auditorias = append(r.s.auditorias, &cp)
	return nil
}

func (r *fakeAuditoriaRepo) GetByID(_ context.Context, _ int64) (*entity.RegistroAuditoria, error) {
	return nil, nil
}

func (r *fakeAuditoriaRepo) ListRecientes(_ context.Context, _ int) ([]*entity.RegistroAuditoria, error) {
	return nil, nil
}

func (r *fakeAuditoriaRepo) ListByTabla(_ context.Context, _ string) ([]*entity.RegistroAuditoria, error) {
	return nil, nil
}

func (r *fakeAuditoriaRepo) ListByEvento(_ context.Context, _ string) ([]*entity.RegistroAuditoria, error) {
	return nil, nil
}

func (r *fakeAuditoriaRepo) ListByUsuario(_ context.Context, _ string) ([]*entity.RegistroAuditoria, error) {
	return nil, nil
}

func (r *fakeAuditoriaRepo) ListByFechas(_ context.Context, _, _ time.Time) ([]*entity.RegistroAuditoria, error) {
	return nil, nil
}

func (r *fakeAuditoriaRepo) ListByRegistro(_ context.Context, _, _ string) ([]*entity.RegistroAuditoria, error) {
	return nil, nil
}

func (r *fakeAuditoriaRepo) CountByEvento(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (r *fakeAuditoriaRepo) DeleteAntiguos(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	lock := &lockState{}
	defer func() {
		if lock.held {
			tx.s.lockMu.Unlock()
		}
	}()
	return fn(
		&fakeMovimientoRepo{s: tx.s},
		&fakeProductoRepo{s: tx.s, lock: lock},
		&fakeAuditoriaRepo{s: tx.s},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	codigoProducto = "PRD-001"
	codigoUsuario  = "USR-001"
	rucProveedor   = "20123456789"
)

func newFixture(t *testing.T, stockInicial int) (*fakeStore, *inventory.MovimientoUseCase) {
	t.Helper()
	s := newFakeStore()
	s.productos["p1"] = &entity.Producto{
		ID: "p1", Codigo: codigoProducto, Nombre: "Arroz 1kg",
		StockActual: stockInicial, StockMinimo: 5, Activo: true,
	}
	s.usuarios["u1"] = &entity.Usuario{
		ID: "u1", Codigo: codigoUsuario, Nombre: "Operador", Rol: entity.RolBodeguero, Activo: true,
	}
	s.proveedores["pr1"] = &entity.Proveedor{
		ID: "pr1", Ruc: rucProveedor, Nombre: "Distribuidora Norte", Activo: true,
	}

	uc := inventory.NewMovimientoUseCase(
		&fakeTxRunner{s: s},
		&fakeMovimientoRepo{s: s},
		&fakeProductoRepo{s: s},
		&fakeUsuarioRepo{s: s},
		&fakeProveedorRepo{s: s},
		logger.Nop(),
	)
	return s, uc
}

func stockDe(t *testing.T, s *fakeStore, id string) int {
	t.Helper()
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.productos[id].StockActual
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCrear_EntradaActiva(t *testing.T) {
	s, uc := newFixture(t, 10)

	out, err := uc.Crear(context.Background(), dto.CrearMovimientoRequest{
		CodigoProducto: codigoProducto,
		Tipo:           "ENTRADA",
		Cantidad:       25,
		CodigoUsuario:  codigoUsuario,
		RucProveedor:   rucProveedor,
	})
	require.NoError(t, err)

	assert.Equal(t, "ENTRADA", out.Tipo)
	assert.Equal(t, "ACTIVO", out.Estado)
	assert.Equal(t, 35, stockDe(t, s, "p1"), "la entrada debe sumar al contador")

	require.Len(t, s.auditorias, 1, "la auditoría se escribe en la misma transacción")
	assert.Equal(t, entity.EventoInsert, s.auditorias[0].EventoTipo)
	assert.Equal(t, out.ID, s.auditorias[0].RegistroID)
}

func TestCrear_SalidaConStock(t *testing.T) {
	s, uc := newFixture(t, 10)

	out, err := uc.Crear(context.Background(), dto.CrearMovimientoRequest{
		CodigoProducto: codigoProducto,
		Tipo:           "salida",
		Cantidad:       10,
		CodigoUsuario:  codigoUsuario,
	})
	require.NoError(t, err)
	assert.Equal(t, "SALIDA", out.Tipo)
	assert.Equal(t, 0, stockDe(t, s, "p1"), "agotar el stock exacto es válido")
}

func TestCrear_SalidaSinStock(t *testing.T) {
	s, uc := newFixture(t, 10)

	_, err := uc.Crear(context.Background(), dto.CrearMovimientoRequest{
		CodigoProducto: codigoProducto,
		Tipo:           "SALIDA",
		Cantidad:       11,
		CodigoUsuario:  codigoUsuario,
	})

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Disponible)
	assert.Equal(t, 11, stockErr.Solicitado)

	assert.Equal(t, 10, stockDe(t, s, "p1"), "el rechazo no debe mutar el stock")
	assert.Empty(t, s.movimientos, "no debe quedar movimiento del intento fallido")
	assert.Empty(t, s.auditorias, "los intentos rechazados no se auditan")
}

func TestCrear_PendienteNoAplicaEfecto(t *testing.T) {
	s, uc := newFixture(t, 10)

	// Una salida PENDIENTE mayor al stock es válida: el chequeo ocurre al activar.
	out, err := uc.Crear(context.Background(), dto.CrearMovimientoRequest{
		CodigoProducto: codigoProducto,
		Tipo:           "SALIDA",
		Cantidad:       50,
		CodigoUsuario:  codigoUsuario,
		Estado:         "PENDIENTE",
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDIENTE", out.Estado)
	assert.Equal(t, 10, stockDe(t, s, "p1"), "un PENDIENTE no toca el contador")
}

func TestCrear_EstadoInicialAnuladoRechazado(t *testing.T) {
	_, uc := newFixture(t, 10)

	_, err := uc.Crear(context.Background(), dto.CrearMovimientoRequest{
		CodigoProducto: codigoProducto,
		Tipo:           "ENTRADA",
		Cantidad:       1,
		CodigoUsuario:  codigoUsuario,
		Estado:         "ANULADO",
	})
	var bizErr *domain.Error
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeInvalidEstado, bizErr.Code,
		"ANULADO es terminal, no un estado inicial")
}

func TestCrear_Rechazos(t *testing.T) {
	_, uc := newFixture(t, 10)
	ctx := context.Background()

	casos := []struct {
		nombre string
		in     dto.CrearMovimientoRequest
		codigo string
	}{
		{
			nombre: "tipo inválido",
			in:     dto.CrearMovimientoRequest{CodigoProducto: codigoProducto, Tipo: "AJUSTE", Cantidad: 1, CodigoUsuario: codigoUsuario},
			codigo: domain.CodeInvalidTipo,
		},
		{
			nombre: "cantidad cero",
			in:     dto.CrearMovimientoRequest{CodigoProducto: codigoProducto, Tipo: "ENTRADA", Cantidad: 0, CodigoUsuario: codigoUsuario},
			codigo: domain.CodeInvalidInput,
		},
		{
			nombre: "producto inexistente",
			in:     dto.CrearMovimientoRequest{CodigoProducto: "NO-EXISTE", Tipo: "ENTRADA", Cantidad: 1, CodigoUsuario: codigoUsuario},
			codigo: domain.CodeProductoNotFound,
		},
		{
			nombre: "usuario inexistente",
			in:     dto.CrearMovimientoRequest{CodigoProducto: codigoProducto, Tipo: "ENTRADA", Cantidad: 1, CodigoUsuario: "NADIE"},
			codigo: domain.CodeUsuarioNotFound,
		},
		{
			nombre: "proveedor inexistente",
			in:     dto.CrearMovimientoRequest{CodigoProducto: codigoProducto, Tipo: "ENTRADA", Cantidad: 1, CodigoUsuario: codigoUsuario, RucProveedor: "000"},
			codigo: domain.CodeProveedorNotFound,
		},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Crear(ctx, c.in)
			var bizErr *domain.Error
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, c.codigo, bizErr.Code)
		})
	}
}

func TestCrear_ProductoInactivo(t *testing.T) {
	s, uc := newFixture(t, 10)
	s.productos["p1"].Activo = false

	_, err := uc.Crear(context.Background(), dto.CrearMovimientoRequest{
		CodigoProducto: codigoProducto,
		Tipo:           "ENTRADA",
		Cantidad:       1,
		CodigoUsuario:  codigoUsuario,
	})
	assert.ErrorIs(t, err, domain.ErrProductoInactive)
	assert.Equal(t, 10, stockDe(t, s, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Anular / Activar
// ──────────────────────────────────────────────────────────────────────────────

func crearMovimiento(t *testing.T, uc *inventory.MovimientoUseCase, tipo string, cantidad int, estado string) *dto.MovimientoResponse {
	t.Helper()
	out, err := uc.Crear(context.Background(), dto.CrearMovimientoRequest{
		CodigoProducto: codigoProducto,
		Tipo:           tipo,
		Cantidad:       cantidad,
		CodigoUsuario:  codigoUsuario,
		Estado:         estado,
	})
	require.NoError(t, err)
	return out
}

func TestAnular_RevierteEntrada(t *testing.T) {
	s, uc := newFixture(t, 10)
	mov := crearMovimiento(t, uc, "ENTRADA", 15, "")
	require.Equal(t, 25, stockDe(t, s, "p1"))

	out, err := uc.Anular(context.Background(), mov.ID)
	require.NoError(t, err)
	assert.Equal(t, "ANULADO", out.Estado)
	assert.Equal(t, 10, stockDe(t, s, "p1"), "anular la entrada resta lo que sumó")

	// INSERT de la creación + UPDATE de la anulación.
	require.Len(t, s.auditorias, 2)
	assert.Equal(t, entity.EventoUpdate, s.auditorias[1].EventoTipo)
}

// La auditoría de una transición se fecha en el momento de la transición,
// no en la fecha de efecto del movimiento. Anular un movimiento de hace un
// año no puede escribir un registro de auditoría fechado hace un año: eso
// corrompe las consultas por fechas y dejaría el registro recién escrito
// elegible para la purga de antiguos.
func TestAnular_AuditoriaConFechaDeTransicion(t *testing.T) {
	s, uc := newFixture(t, 10)
	mov := crearMovimiento(t, uc, "ENTRADA", 15, "")

	// Movimiento con efecto de hace un año.
	s.movimientos[mov.ID].Fecha = time.Now().AddDate(-1, 0, 0)

	_, err := uc.Anular(context.Background(), mov.ID)
	require.NoError(t, err)

	require.Len(t, s.auditorias, 2)
	anulacion := s.auditorias[1]
	require.Equal(t, entity.EventoUpdate, anulacion.EventoTipo)
	assert.WithinDuration(t, time.Now(), anulacion.CreatedAt, time.Minute,
		"la auditoría de la anulación lleva la fecha de la transición, no la del movimiento")
}

func TestActivar_AuditoriaConFechaDeTransicion(t *testing.T) {
	s, uc := newFixture(t, 10)
	mov := crearMovimiento(t, uc, "ENTRADA", 15, "PENDIENTE")
	s.movimientos[mov.ID].Fecha = time.Now().AddDate(-1, 0, 0)

	_, err := uc.Activar(context.Background(), mov.ID)
	require.NoError(t, err)

	require.Len(t, s.auditorias, 2)
	activacion := s.auditorias[1]
	require.Equal(t, entity.EventoUpdate, activacion.EventoTipo)
	assert.WithinDuration(t, time.Now(), activacion.CreatedAt, time.Minute)
}

func TestAnular_RevierteSalida(t *testing.T) {
	s, uc := newFixture(t, 10)
	mov := crearMovimiento(t, uc, "SALIDA", 4, "")
	require.Equal(t, 6, stockDe(t, s, "p1"))

	_, err := uc.Anular(context.Background(), mov.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stockDe(t, s, "p1"), "anular la salida devuelve lo que restó")
}

// Anular una entrada cuyo stock ya se consumió por otra vía dejaría el
// contador negativo: debe rechazarse sin mutar nada.
func TestAnular_EntradaConsumidaStockNegativo(t *testing.T) {
	s, uc := newFixture(t, 0)
	entrada := crearMovimiento(t, uc, "ENTRADA", 20, "")
	crearMovimiento(t, uc, "SALIDA", 15, "")
	require.Equal(t, 5, stockDe(t, s, "p1"))

	_, err := uc.Anular(context.Background(), entrada.ID)
	var bizErr *domain.Error
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeNegativeStock, bizErr.Code)

	assert.Equal(t, 5, stockDe(t, s, "p1"), "el rechazo no muta el stock")
	assert.Equal(t, entity.EstadoActivo, s.movimientos[entrada.ID].Estado,
		"el movimiento sigue ACTIVO")
}

func TestAnular_SoloActivos(t *testing.T) {
	_, uc := newFixture(t, 100)
	pendiente := crearMovimiento(t, uc, "SALIDA", 5, "PENDIENTE")
	activo := crearMovimiento(t, uc, "SALIDA", 5, "")

	_, err := uc.Anular(context.Background(), pendiente.ID)
	var bizErr *domain.Error
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeInvalidMovementState, bizErr.Code)

	// Doble anulación: la segunda encuentra ANULADO (terminal).
	_, err = uc.Anular(context.Background(), activo.ID)
	require.NoError(t, err)
	_, err = uc.Anular(context.Background(), activo.ID)
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeInvalidMovementState, bizErr.Code)
}

func TestActivar_AplicaEfecto(t *testing.T) {
	s, uc := newFixture(t, 10)
	mov := crearMovimiento(t, uc, "SALIDA", 8, "PENDIENTE")
	require.Equal(t, 10, stockDe(t, s, "p1"))

	out, err := uc.Activar(context.Background(), mov.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVO", out.Estado)
	assert.Equal(t, 2, stockDe(t, s, "p1"), "activar aplica el efecto diferido")
}

func TestActivar_SalidaSinStockQuedaPendiente(t *testing.T) {
	s, uc := newFixture(t, 10)
	mov := crearMovimiento(t, uc, "SALIDA", 50, "PENDIENTE")

	_, err := uc.Activar(context.Background(), mov.ID)
	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Disponible)
	assert.Equal(t, 50, stockErr.Solicitado)

	assert.Equal(t, 10, stockDe(t, s, "p1"))
	assert.Equal(t, entity.EstadoPendiente, s.movimientos[mov.ID].Estado,
		"el movimiento permanece PENDIENTE, reintentable")
}

func TestActivar_SoloPendientes(t *testing.T) {
	_, uc := newFixture(t, 10)
	activo := crearMovimiento(t, uc, "ENTRADA", 5, "")

	_, err := uc.Activar(context.Background(), activo.ID)
	var bizErr *domain.Error
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeInvalidMovementState, bizErr.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: el lock de fila produce exactamente un ganador
// ──────────────────────────────────────────────────────────────────────────────

func TestConcurrencia_DosSalidasSobreElMismoStock(t *testing.T) {
	s, uc := newFixture(t, 100)

	const concurrentes = 2
	errs := make([]error, concurrentes)
	var wg sync.WaitGroup
	for i := 0; i < concurrentes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Crear(context.Background(), dto.CrearMovimientoRequest{
				CodigoProducto: codigoProducto,
				Tipo:           "SALIDA",
				Cantidad:       60,
				CodigoUsuario:  codigoUsuario,
			})
		}(i)
	}
	wg.Wait()

	exitos, rechazos := 0, 0
	for _, err := range errs {
		if err == nil {
			exitos++
			continue
		}
		var stockErr *domain.StockInsuficienteError
		require.ErrorAs(t, err, &stockErr, "el perdedor debe fallar por stock, no por otra causa")
		rechazos++
	}
	assert.Equal(t, 1, exitos, "exactamente una salida debe ganar el lock")
	assert.Equal(t, 1, rechazos)
	assert.Equal(t, 40, stockDe(t, s, "p1"), "solo el ganador muta el contador")
}

func TestConcurrencia_DobleAnulacionUnGanador(t *testing.T) {
	s, uc := newFixture(t, 10)
	mov := crearMovimiento(t, uc, "ENTRADA", 20, "")
	require.Equal(t, 30, stockDe(t, s, "p1"))

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Anular(context.Background(), mov.ID)
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
			continue
		}
		var bizErr *domain.Error
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, domain.CodeInvalidMovementState, bizErr.Code,
			"el perdedor ve el movimiento ya ANULADO")
	}
	assert.Equal(t, 1, exitos, "la reversión debe aplicarse una sola vez")
	assert.Equal(t, 10, stockDe(t, s, "p1"), "el stock se revierte exactamente una vez")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestVerificarConsistencia(t *testing.T) {
	s, uc := newFixture(t, 0)
	crearMovimiento(t, uc, "ENTRADA", 30, "")
	crearMovimiento(t, uc, "SALIDA", 10, "")
	crearMovimiento(t, uc, "SALIDA", 5, "PENDIENTE") // no cuenta: no está ACTIVO

	out, err := uc.VerificarConsistencia(context.Background(), codigoProducto)
	require.NoError(t, err)
	assert.True(t, out.Consistente)
	assert.Equal(t, 20, out.StockActual)
	assert.Equal(t, 20, out.SumaMovimientos)

	// Escritura fuera del motor: el contador queda desincronizado del libro.
	s.productos["p1"].StockActual = 99
	out, err = uc.VerificarConsistencia(context.Background(), codigoProducto)
	require.NoError(t, err)
	assert.False(t, out.Consistente)
	assert.Equal(t, 99, out.StockActual)
	assert.Equal(t, 20, out.SumaMovimientos)
}

func TestListar_RangoDeFechasInvalido(t *testing.T) {
	_, uc := newFixture(t, 10)

	_, err := uc.Listar(context.Background(), dto.ListarMovimientosQuery{
		Desde: "2026-05-01T00:00:00Z",
		Hasta: "2026-01-01T00:00:00Z",
	})
	var bizErr *domain.Error
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, domain.CodeInvalidDateRange, bizErr.Code)
}

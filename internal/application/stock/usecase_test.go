package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore guarda stock y movimientos en memoria, con semántica
// transaccional: Run toma snapshot y lo restaura si fn devuelve error.
// El mutex serializa transacciones, igual que el FOR UPDATE por fila.
type fakeStore struct {
	mu        sync.Mutex
	stocks    map[string]*entity.Stock // clave itemID|locationID
	movements []*entity.StockMovement
}

func newFakeStore() *fakeStore {
	return &fakeStore{stocks: map[string]*entity.Stock{}}
}

func key(itemID, locationID string) string { return itemID + "|" + locationID }

func (s *fakeStore) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]*entity.Stock, len(s.stocks))
	for k, v := range s.stocks {
		copied := *v
		snapshot[k] = &copied
	}
	movCount := len(s.movements)

	if err := fn(&fakeStockRepo{store: s}, &fakeMovementRepo{store: s}); err != nil {
		s.stocks = snapshot
		s.movements = s.movements[:movCount]
		return err
	}
	return nil
}

func (s *fakeStore) quantity(itemID, locationID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stocks[key(itemID, locationID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

func (s *fakeStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// netTotal suma todos los asientos de un artículo: entradas menos salidas.
func (s *fakeStore) netTotal(itemID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, m := range s.movements {
		if m.ItemID != itemID {
			continue
		}
		if m.Type == entity.MovementTypeInbound {
			total = total.Add(m.QuantityChange)
		} else {
			total = total.Sub(m.QuantityChange)
		}
	}
	return total
}

type fakeStockRepo struct {
	store *fakeStore
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(itemID, locationID string) (*entity.Stock, error) {
	if st, ok := r.store.stocks[key(itemID, locationID)]; ok {
		copied := *st
		return &copied, nil
	}
	return &entity.Stock{ItemID: itemID, StorageLocationID: locationID, Quantity: decimal.Zero}, nil
}

func (r *fakeStockRepo) CreateIfAbsent(itemID, warehouseID, locationID string) error {
	k := key(itemID, locationID)
	if _, ok := r.store.stocks[k]; !ok {
		r.store.stocks[k] = &entity.Stock{
			ItemID:            itemID,
			WarehouseID:       warehouseID,
			StorageLocationID: locationID,
			Quantity:          decimal.Zero,
		}
	}
	return nil
}

func (r *fakeStockRepo) GetForUpdate(itemID, locationID string) (*entity.Stock, error) {
	return r.Get(itemID, locationID)
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	copied := *stock
	r.store.stocks[key(stock.ItemID, stock.StorageLocationID)] = &copied
	return nil
}

func (r *fakeStockRepo) ListByItem(itemID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.store.stocks {
		if st.ItemID == itemID {
			copied := *st
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListByLocation(locationID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.store.stocks {
		if st.StorageLocationID == locationID {
			copied := *st
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) TotalByItem(itemID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, st := range r.store.stocks {
		if st.ItemID == itemID {
			total = total.Add(st.Quantity)
		}
	}
	return total, nil
}

func (r *fakeStockRepo) ListBelow(decimal.Decimal) ([]*entity.Stock, error) { return nil, nil }
func (r *fakeStockRepo) ListZero() ([]*entity.Stock, error)                { return nil, nil }
func (r *fakeStockRepo) ListDistinctLocationCodes() ([]string, error)      { return nil, nil }

type fakeMovementRepo struct {
	store *fakeStore
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	copied := *m
	r.store.movements = append(r.store.movements, &copied)
	return nil
}

func (r *fakeMovementRepo) ListByItem(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByLocation(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListBySlip(slipID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.SlipID == slipID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListRecent(int) ([]*entity.StockMovement, error) { return nil, nil }

// fakeResolver resuelve códigos contra un mapa fijo código → ubicación.
type fakeResolver struct {
	byCode map[string]*entity.StorageLocation
}

func newFakeResolver(codes ...string) *fakeResolver {
	r := &fakeResolver{byCode: map[string]*entity.StorageLocation{}}
	for i, code := range codes {
		r.byCode[code] = &entity.StorageLocation{
			ID:          "loc-" + code,
			Code:        code,
			WarehouseID: "wh-" + string(rune('A'+i)),
			Status:      entity.LocationStatusActive,
		}
	}
	return r
}

func (r *fakeResolver) Resolve(_ context.Context, code string) (*entity.StorageLocation, error) {
	if loc, ok := r.byCode[code]; ok {
		return loc, nil
	}
	return nil, domain.ErrLocationNotFound
}

func (r *fakeResolver) CodeOf(_ context.Context, id string) (string, error) {
	for _, loc := range r.byCode {
		if loc.ID == id {
			return loc.Code, nil
		}
	}
	return "", domain.ErrLocationNotFound
}

// fakeItemRepo solo conoce un conjunto de IDs existentes.
type fakeItemRepo struct {
	existing map[string]bool
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) ExistsByID(id string) (bool, error) { return r.existing[id], nil }

func (r *fakeItemRepo) Create(*entity.Item) error                    { return nil }
func (r *fakeItemRepo) GetByID(string) (*entity.Item, error)         { return nil, nil }
func (r *fakeItemRepo) GetByName(string) (*entity.Item, error)       { return nil, nil }
func (r *fakeItemRepo) ExistsByName(string) (bool, error)            { return false, nil }
func (r *fakeItemRepo) Update(*entity.Item) error                    { return nil }
func (r *fakeItemRepo) Delete(string) error                          { return nil }
func (r *fakeItemRepo) List(int, int) ([]*entity.Item, error)        { return nil, nil }
func (r *fakeItemRepo) SearchByName(string, int, int) ([]*entity.Item, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	itemA      = "item-a"
	freezeCode = "FREEZE_WH"
	scrapCode  = "SCRAP_WH"
)

func newTestUseCase(t *testing.T) (*stock.OperationsUseCase, *fakeStore, *fakeResolver) {
	t.Helper()
	store := newFakeStore()
	resolver := newFakeResolver("A001", "B001", freezeCode, scrapCode)
	items := &fakeItemRepo{existing: map[string]bool{itemA: true}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := stock.NewOperationsUseCase(store, items, resolver, nil, log, stock.VirtualLocations{
		FreezeCode: freezeCode,
		ScrapCode:  scrapCode,
	})
	return uc, store, resolver
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func locID(code string) string { return "loc-" + code }

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInbound_CantidadNoPositiva_Rechazada(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	err := uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	err = uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Equal(t, 0, store.movementCount(), "una operación rechazada no debe dejar asientos")
}

func TestInbound_ArticuloInexistente_Rechazado(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	err := uc.Inbound(context.Background(), stock.MovementInput{ItemID: "no-existe", ToLocation: "A001", Quantity: qty(1)})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestInbound_UbicacionInexistente_Rechazada(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	err := uc.Inbound(context.Background(), stock.MovementInput{ItemID: itemA, ToLocation: "Z999", Quantity: qty(1)})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestTransfer_MismaUbicacion_Rechazada(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	err := uc.Transfer(context.Background(), stock.MovementInput{
		ItemID: itemA, FromLocation: "A001", ToLocation: "A001", Quantity: qty(1),
	})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestInbound_AcumulaStockYAsienta(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(10)}))
	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(5)}))

	assert.True(t, store.quantity(itemA, locID("A001")).Equal(qty(15)))
	assert.Equal(t, 2, store.movementCount())
	assert.True(t, store.netTotal(itemA).Equal(qty(15)),
		"el stock debe igualar la suma neta del libro")
}

func TestOutbound_StockInsuficiente_NoDejaRastro(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(3)}))

	err := uc.Outbound(ctx, stock.MovementInput{ItemID: itemA, FromLocation: "A001", Quantity: qty(5)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, store.quantity(itemA, locID("A001")).Equal(qty(3)),
		"el stock no debe cambiar tras un rechazo")
	assert.Equal(t, 1, store.movementCount(),
		"la salida rechazada no debe asentarse")
}

func TestOutbound_HastaCeroExacto_Permitido(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(4)}))
	require.NoError(t, uc.Outbound(ctx, stock.MovementInput{ItemID: itemA, FromLocation: "A001", Quantity: qty(4)}))

	assert.True(t, store.quantity(itemA, locID("A001")).IsZero(),
		"vaciar la ubicación hasta cero exacto es válido")
}

func TestTransfer_DosAsientosMismaTransaccion(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(10)}))
	require.NoError(t, uc.Transfer(ctx, stock.MovementInput{
		ItemID: itemA, FromLocation: "A001", ToLocation: "B001", Quantity: qty(4),
	}))

	assert.True(t, store.quantity(itemA, locID("A001")).Equal(qty(6)))
	assert.True(t, store.quantity(itemA, locID("B001")).Equal(qty(4)))
	assert.True(t, store.netTotal(itemA).Equal(qty(10)),
		"un traslado no crea ni destruye existencias")

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Equal(t, 3, len(store.movements))
	out, in := store.movements[1], store.movements[2]
	assert.Equal(t, entity.MovementTypeOutbound, out.Type)
	assert.Equal(t, entity.MovementTypeInbound, in.Type)
	assert.Equal(t, out.TransactionID, in.TransactionID,
		"las dos patas comparten TransactionID")
}

func TestTransfer_DestinoSinSaldo_RevierteLaSalida(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	// Sin stock en origen: la primera pata falla y nada queda asentado.
	err := uc.Transfer(ctx, stock.MovementInput{
		ItemID: itemA, FromLocation: "A001", ToLocation: "B001", Quantity: qty(2),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, store.movementCount())
	assert.True(t, store.quantity(itemA, locID("A001")).IsZero())
	assert.True(t, store.quantity(itemA, locID("B001")).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Congelado y merma
// ──────────────────────────────────────────────────────────────────────────────

func TestFreezeUnfreeze_IdaYVuelta(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(10)}))
	require.NoError(t, uc.Freeze(ctx, stock.MovementInput{ItemID: itemA, FromLocation: "A001", Quantity: qty(6)}))

	assert.True(t, store.quantity(itemA, locID("A001")).Equal(qty(4)))
	assert.True(t, store.quantity(itemA, locID(freezeCode)).Equal(qty(6)),
		"lo congelado queda en la ubicación virtual, no desaparece")

	require.NoError(t, uc.Unfreeze(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(6)}))
	assert.True(t, store.quantity(itemA, locID("A001")).Equal(qty(10)))
	assert.True(t, store.quantity(itemA, locID(freezeCode)).IsZero())
	assert.True(t, store.netTotal(itemA).Equal(qty(10)))
}

func TestUnfreeze_MasDeLoCongelado_Rechazado(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(10)}))
	require.NoError(t, uc.Freeze(ctx, stock.MovementInput{ItemID: itemA, FromLocation: "A001", Quantity: qty(2)}))

	err := uc.Unfreeze(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(3)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"no se puede descongelar más de lo que hay congelado")
}

func TestScrap_MueveAMerma(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(10)}))
	require.NoError(t, uc.Scrap(ctx, stock.MovementInput{ItemID: itemA, FromLocation: "A001", Quantity: qty(3)}))

	assert.True(t, store.quantity(itemA, locID("A001")).Equal(qty(7)))
	assert.True(t, store.quantity(itemA, locID(scrapCode)).Equal(qty(3)),
		"la merma es auditable: las unidades quedan en SCRAP_WH")
	assert.True(t, store.netTotal(itemA).Equal(qty(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos salidas concurrentes de 1 unidad contra una fila con 1 unidad:
// exactamente una gana y la otra ve stock insuficiente, nunca un negativo.
func TestOutbound_Concurrente_SinPerdidaDeActualizacion(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(1)}))

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- uc.Outbound(ctx, stock.MovementInput{ItemID: itemA, FromLocation: "A001", Quantity: qty(1)})
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, insufficientCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficientCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, insufficientCount)
	assert.True(t, store.quantity(itemA, locID("A001")).IsZero(),
		"el saldo final debe ser cero, nunca negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

// Entrada 100 → traslado 30 → merma 5: los saldos finales y el total neto
// del libro deben cuadrar.
func TestEscenario_EntradaTrasladoMerma(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.Inbound(ctx, stock.MovementInput{ItemID: itemA, ToLocation: "A001", Quantity: qty(100)}))
	require.NoError(t, uc.Transfer(ctx, stock.MovementInput{
		ItemID: itemA, FromLocation: "A001", ToLocation: "B001", Quantity: qty(30),
	}))
	require.NoError(t, uc.Scrap(ctx, stock.MovementInput{ItemID: itemA, FromLocation: "B001", Quantity: qty(5)}))

	assert.True(t, store.quantity(itemA, locID("A001")).Equal(qty(70)))
	assert.True(t, store.quantity(itemA, locID("B001")).Equal(qty(25)))
	assert.True(t, store.quantity(itemA, locID(scrapCode)).Equal(qty(5)))
	assert.True(t, store.netTotal(itemA).Equal(qty(100)),
		"nada entra ni sale del sistema salvo por la entrada inicial")

	store.mu.Lock()
	defer store.mu.Unlock()
	for _, m := range store.movements {
		assert.NotEmpty(t, m.TransactionID)
		assert.True(t, m.QuantityChange.GreaterThan(decimal.Zero),
			"QuantityChange siempre es magnitud positiva")
	}
}

package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func setupStockRepo(t *testing.T) (*StockRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewStockRepository(mock), mock
}

func stockCols() []string {
	return []string{"item_id", "warehouse_id", "storage_location_id", "quantity", "updated_at"}
}

func sampleStock() *entity.Stock {
	return &entity.Stock{
		ItemID:            "item-1",
		WarehouseID:       "wh-1",
		StorageLocationID: "loc-1",
		Quantity:          decimal.NewFromInt(42),
		UpdatedAt:         time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func stockRow(s *entity.Stock) *pgxmock.Rows {
	return pgxmock.NewRows(stockCols()).
		AddRow(s.ItemID, s.WarehouseID, s.StorageLocationID, s.Quantity, s.UpdatedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / GetForUpdate
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRepo_Get_FilaExistente(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	s := sampleStock()
	mock.ExpectQuery("FROM stock WHERE item_id").
		WithArgs(s.ItemID, s.StorageLocationID).
		WillReturnRows(stockRow(s))

	got, err := repo.Get(s.ItemID, s.StorageLocationID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(s.Quantity))
	assert.Equal(t, s.WarehouseID, got.WarehouseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Sin fila no hay error: una clave que nunca se movió está en cero.
func TestStockRepo_Get_SinFilaDevuelveCero(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	mock.ExpectQuery("FROM stock WHERE item_id").
		WithArgs("item-x", "loc-x").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.Get("item-x", "loc-x")
	require.NoError(t, err)
	assert.Equal(t, "item-x", got.ItemID)
	assert.Equal(t, "loc-x", got.StorageLocationID)
	assert.True(t, got.Quantity.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_GetForUpdate_BloqueaLaFila(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	s := sampleStock()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(s.ItemID, s.StorageLocationID).
		WillReturnRows(stockRow(s))

	got, err := repo.GetForUpdate(s.ItemID, s.StorageLocationID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(s.Quantity))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateIfAbsent / Upsert
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRepo_CreateIfAbsent_InsertaEnCero(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO stock").
		WithArgs("item-1", "wh-1", "loc-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateIfAbsent("item-1", "wh-1", "loc-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Con fila ya existente el ON CONFLICT no toca nada y tampoco es error.
func TestStockRepo_CreateIfAbsent_FilaYaExiste(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO stock").
		WithArgs("item-1", "wh-1", "loc-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := repo.CreateIfAbsent("item-1", "wh-1", "loc-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_Upsert_ActualizaCantidad(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	s := sampleStock()
	mock.ExpectExec("INSERT INTO stock").
		WithArgs(s.ItemID, s.WarehouseID, s.StorageLocationID, s.Quantity).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(s)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_Upsert_ErrorDeConexion(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	s := sampleStock()
	mock.ExpectExec("INSERT INTO stock").
		WithArgs(s.ItemID, s.WarehouseID, s.StorageLocationID, s.Quantity).
		WillReturnError(errors.New("connection refused"))

	err := repo.Upsert(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert stock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRepo_TotalByItem_SumaUbicaciones(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("item-1").
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(70)))

	total, err := repo.TotalByItem("item-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(70)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_ListByItem(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	s := sampleStock()
	rows := pgxmock.NewRows(stockCols()).
		AddRow(s.ItemID, s.WarehouseID, "loc-1", decimal.NewFromInt(42), s.UpdatedAt).
		AddRow(s.ItemID, s.WarehouseID, "loc-2", decimal.NewFromInt(8), s.UpdatedAt)
	mock.ExpectQuery("FROM stock WHERE item_id").
		WithArgs(s.ItemID).
		WillReturnRows(rows)

	list, err := repo.ListByItem(s.ItemID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "loc-1", list[0].StorageLocationID)
	assert.Equal(t, "loc-2", list[1].StorageLocationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_ListDistinctLocationCodes(t *testing.T) {
	repo, mock := setupStockRepo(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"code"}).AddRow("A001").AddRow("B001")
	mock.ExpectQuery("SELECT DISTINCT sl.code").WillReturnRows(rows)

	codes, err := repo.ListDistinctLocationCodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"A001", "B001"}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

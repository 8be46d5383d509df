package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = "item_id, warehouse_id, storage_location_id, quantity, updated_at"

// Get obtiene el stock actual de un artículo en una ubicación.
// Si no hay fila devuelve un stock en cero (el cero físico no exige fila).
func (r *StockRepo) Get(itemID, storageLocationID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE item_id = $1 AND storage_location_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, storageLocationID).Scan(
		&s.ItemID, &s.WarehouseID, &s.StorageLocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, StorageLocationID: storageLocationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// CreateIfAbsent asegura que exista la fila en cero antes de bloquearla.
// ON CONFLICT DO NOTHING cierra la carrera de creación concurrente: dos
// transacciones pueden insertar a la vez y ambas acaban bloqueando la misma fila.
func (r *StockRepo) CreateIfAbsent(itemID, warehouseID, storageLocationID string) error {
	query := `
		INSERT INTO stock (item_id, warehouse_id, storage_location_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (item_id, storage_location_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, itemID, warehouseID, storageLocationID)
	if err != nil {
		return fmt.Errorf("create stock if absent: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(itemID, storageLocationID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE item_id = $1 AND storage_location_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, storageLocationID).Scan(
		&s.ItemID, &s.WarehouseID, &s.StorageLocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, StorageLocationID: storageLocationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por artículo y ubicación).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (item_id, warehouse_id, storage_location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (item_id, storage_location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ItemID, stock.WarehouseID, stock.StorageLocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByItem lista el stock de un artículo en todas las ubicaciones donde existe fila.
func (r *StockRepo) ListByItem(itemID string) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE item_id = $1
		ORDER BY storage_location_id`
	return r.list(query, itemID)
}

// ListByLocation lista el stock de todos los artículos en una ubicación.
func (r *StockRepo) ListByLocation(storageLocationID string) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE storage_location_id = $1
		ORDER BY item_id`
	return r.list(query, storageLocationID)
}

// TotalByItem suma el stock de un artículo a través de todas las ubicaciones.
func (r *StockRepo) TotalByItem(itemID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE item_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total stock by item: %w", err)
	}
	return total, nil
}

// ListBelow lista las filas con cantidad por debajo del umbral (reporte de stock bajo).
func (r *StockRepo) ListBelow(threshold decimal.Decimal) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE quantity < $1
		ORDER BY quantity ASC`
	return r.list(query, threshold)
}

// ListZero lista las filas en cero exacto (existen pero sin existencias).
func (r *StockRepo) ListZero() ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE quantity = 0
		ORDER BY item_id`
	return r.list(query)
}

// ListDistinctLocationCodes lista los códigos de las ubicaciones que tienen stock.
func (r *StockRepo) ListDistinctLocationCodes() ([]string, error) {
	query := `
		SELECT DISTINCT sl.code
		FROM stock s
		JOIN storage_locations sl ON sl.id = s.storage_location_id
		ORDER BY sl.code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list location codes: %w", err)
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan location code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *StockRepo) list(query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ItemID, &s.WarehouseID, &s.StorageLocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Solo INSERT y SELECT: las entradas jamás se actualizan ni se borran.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = "id, transaction_id, item_id, warehouse_id, storage_location_id, type, quantity_change, note, slip_id, created_at"

// Create persiste una entrada del libro de movimientos.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	slipID := (*string)(nil)
	if movement.SlipID != "" {
		slipID = &movement.SlipID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.ItemID, movement.WarehouseID,
		movement.StorageLocationID, movement.Type, movement.QuantityChange,
		movement.Note, slipID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un artículo, más reciente primero.
func (r *StockMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, itemID, limit, offset)
}

// ListByLocation lista los movimientos de una ubicación, más reciente primero.
func (r *StockMovementRepo) ListByLocation(storageLocationID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE storage_location_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, storageLocationID, limit, offset)
}

// ListBySlip lista los movimientos que originó un vale.
func (r *StockMovementRepo) ListBySlip(slipID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE slip_id = $1
		ORDER BY created_at ASC`
	return r.list(query, slipID)
}

// ListRecent lista los últimos movimientos del sistema.
func (r *StockMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		ORDER BY created_at DESC LIMIT $1`
	return r.list(query, limit)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var slipID *string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ItemID, &m.WarehouseID,
			&m.StorageLocationID, &m.Type, &m.QuantityChange, &m.Note, &slipID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if slipID != nil {
			m.SlipID = *slipID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

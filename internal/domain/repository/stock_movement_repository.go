package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockMovementRepository define el puerto para el libro de movimientos.
// Solo inserta y consulta: las entradas nunca se actualizan ni se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(storageLocationID string, limit, offset int) ([]*entity.StockMovement, error)
	ListBySlip(slipID string) ([]*entity.StockMovement, error)
	ListRecent(limit int) ([]*entity.StockMovement, error)
}

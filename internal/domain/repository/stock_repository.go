package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por
// (artículo, ubicación). Las mutaciones se usan solo dentro de transacciones.
type StockRepository interface {
	Get(itemID, storageLocationID string) (*entity.Stock, error)
	// CreateIfAbsent asegura que exista la fila en cero antes de bloquearla;
	// cierra la carrera de creación concurrente (ON CONFLICT DO NOTHING).
	CreateIfAbsent(itemID, warehouseID, storageLocationID string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(itemID, storageLocationID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error

	ListByItem(itemID string) ([]*entity.Stock, error)
	ListByLocation(storageLocationID string) ([]*entity.Stock, error)
	TotalByItem(itemID string) (decimal.Decimal, error)
	ListBelow(threshold decimal.Decimal) ([]*entity.Stock, error)
	ListZero() ([]*entity.Stock, error)
	ListDistinctLocationCodes() ([]string, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad actual de un artículo en una ubicación
// (caché materializado del libro de movimientos). Clave única
// (item_id, storage_location_id); la cantidad nunca puede ser negativa.
// Una fila en cero es válida y distinta de "sin fila".
type Stock struct {
	ItemID            string
	WarehouseID       string
	StorageLocationID string
	Quantity          decimal.Decimal
	UpdatedAt         time.Time
}

package entity

import "time"

// Estados de una ubicación de almacenaje.
const (
	LocationStatusActive   = "active"
	LocationStatusInactive = "inactive"
)

// StorageLocation representa una ubicación de almacenaje dentro de una bodega.
// El código (ej. "A001") es único y es la referencia humana que usan las
// operaciones de stock; el núcleo la resuelve, nunca la muta.
type StorageLocation struct {
	ID          string
	Code        string // único, ej. "A001"
	WarehouseID string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

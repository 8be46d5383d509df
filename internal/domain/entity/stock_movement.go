package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeInbound  = "INBOUND"
	MovementTypeOutbound = "OUTBOUND"
)

// StockMovement representa una entrada inmutable del libro de movimientos
// (append-only). QuantityChange siempre es magnitud positiva; el signo lo
// implica Type. El libro es la fuente de verdad: la cantidad en Stock debe
// igualar la suma neta de movimientos de su clave.
type StockMovement struct {
	ID                string
	TransactionID     string // agrupa los asientos de una misma operación (transfer = 2)
	ItemID            string
	WarehouseID       string
	StorageLocationID string
	Type              string // INBOUND, OUTBOUND
	QuantityChange    decimal.Decimal
	Note              string
	SlipID            string // vale que originó el movimiento; vacío si fue operación directa
	CreatedAt         time.Time
}

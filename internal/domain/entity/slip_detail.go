package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de vale. PENDING al crear; el worker que la toma la
// reclama primero (PROCESSING) y la cierra en PROCESSED o FAILED. El reclamo
// es una transición condicionada: garantiza que una línea encolada dos veces
// se aplique una sola. CANCELLED solo se alcanza si el vale se cancela antes
// de completarse (cascada de cancelación).
const (
	DetailStatusPending    = "PENDING"
	DetailStatusProcessing = "PROCESSING"
	DetailStatusProcessed  = "PROCESSED"
	DetailStatusCancelled  = "CANCELLED"
	DetailStatusFailed     = "FAILED"
)

// SlipDetail representa una línea de un vale: un cambio de inventario
// itemizado, con seguimiento de procesamiento independiente del resto de
// líneas y del estado del vale.
type SlipDetail struct {
	ID                    string
	SlipID                string
	LineNumber            int // orden de despliegue dentro del vale; no implica orden causal
	ItemID                string
	FromWarehouseID       string // opcional según tipo de vale
	FromStorageLocationID string
	ToWarehouseID         string
	ToStorageLocationID   string
	QuantityChange        decimal.Decimal // siempre positiva
	Status                string          // PENDING, PROCESSING, PROCESSED, CANCELLED, FAILED
	Note                  string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

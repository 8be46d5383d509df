package entity

import "time"

// Tipos de vale (documento de operación de inventario).
const (
	SlipTypeInbound  = "INBOUND"
	SlipTypeOutbound = "OUTBOUND"
	SlipTypeTransfer = "TRANSFER"
	SlipTypeFreeze   = "FREEZE"
	SlipTypeScrap    = "SCRAP"
)

// Estados de un vale. DRAFT es el inicial; COMPLETED y CANCELLED son
// terminales: desde ellos no se permite ninguna transición.
const (
	SlipStatusDraft     = "DRAFT"
	SlipStatusCompleted = "COMPLETED"
	SlipStatusCancelled = "CANCELLED"
)

// Slip representa un documento que agrupa líneas de cambio de inventario.
// Completarlo dispara la aplicación por línea contra el libro de movimientos.
type Slip struct {
	ID        string
	Type      string // INBOUND, OUTBOUND, TRANSFER, FREEZE, SCRAP
	Status    string // DRAFT, COMPLETED, CANCELLED
	CreatedBy string // UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidSlipType indica si el tipo de vale es uno de los soportados.
func ValidSlipType(t string) bool {
	switch t {
	case SlipTypeInbound, SlipTypeOutbound, SlipTypeTransfer, SlipTypeFreeze, SlipTypeScrap:
		return true
	}
	return false
}

// Terminal indica si el vale está en un estado terminal.
func (s *Slip) Terminal() bool {
	return s.Status == SlipStatusCompleted || s.Status == SlipStatusCancelled
}

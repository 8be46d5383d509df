package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// SlipDetailRepository define el puerto de persistencia para las líneas de vale.
type SlipDetailRepository interface {
	Create(detail *entity.SlipDetail) error
	GetByID(id string) (*entity.SlipDetail, error)
	ListBySlip(slipID string) ([]*entity.SlipDetail, error)
	ListBySlipAndStatus(slipID, status string) ([]*entity.SlipDetail, error)
	// ClaimPending transiciona PENDING → PROCESSING solo si la línea sigue
	// PENDING. Devuelve false si otro worker ya la reclamó (o ya terminó):
	// el que pierde el reclamo no debe aplicar la línea.
	ClaimPending(id string) (bool, error)
	UpdateStatus(id, status string) error
	// CancelPending marca CANCELLED todas las líneas PENDING de un vale
	// (cascada al cancelar el vale). Devuelve cuántas líneas cambió.
	CancelPending(slipID string) (int64, error)
}

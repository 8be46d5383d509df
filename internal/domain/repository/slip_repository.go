package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SlipRepository define el puerto de persistencia para Slip.
type SlipRepository interface {
	Create(slip *entity.Slip) error
	GetByID(id string) (*entity.Slip, error)
	// TransitionStatus cambia el estado solo si el actual es `from`
	// (UPDATE ... WHERE status = from). Devuelve false si no hubo cambio,
	// lo que cierra la carrera entre completar/cancelar concurrentes.
	TransitionStatus(id, from, to string) (bool, error)
	List(limit, offset int) ([]*entity.Slip, error)
	ListByType(slipType string, limit, offset int) ([]*entity.Slip, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Slip, error)
	ListByCreatedBy(createdBy string, limit, offset int) ([]*entity.Slip, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Slip, error)
	CountByTypeAndStatus(slipType, status string) (int64, error)
	CountByCreatedBy(createdBy string) (int64, error)
}

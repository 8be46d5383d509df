package slip

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Get devuelve un vale con todas sus líneas.
func (uc *UseCase) Get(_ context.Context, id string) (*entity.Slip, []*entity.SlipDetail, error) {
	slip, err := uc.slipRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if slip == nil {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.detailRepo.ListBySlip(id)
	if err != nil {
		return nil, nil, err
	}
	return slip, details, nil
}

// List devuelve vales paginados.
func (uc *UseCase) List(_ context.Context, limit, offset int) ([]*entity.Slip, error) {
	return uc.slipRepo.List(limit, offset)
}

// ListByType devuelve vales de un tipo.
func (uc *UseCase) ListByType(_ context.Context, slipType string, limit, offset int) ([]*entity.Slip, error) {
	if !entity.ValidSlipType(slipType) {
		return nil, domain.ErrInvalidInput
	}
	return uc.slipRepo.ListByType(slipType, limit, offset)
}

// ListByStatus devuelve vales en un estado.
func (uc *UseCase) ListByStatus(_ context.Context, status string, limit, offset int) ([]*entity.Slip, error) {
	switch status {
	case entity.SlipStatusDraft, entity.SlipStatusCompleted, entity.SlipStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.slipRepo.ListByStatus(status, limit, offset)
}

// ListByCreatedBy devuelve los vales creados por un usuario.
func (uc *UseCase) ListByCreatedBy(_ context.Context, createdBy string, limit, offset int) ([]*entity.Slip, error) {
	return uc.slipRepo.ListByCreatedBy(createdBy, limit, offset)
}

// ListByDateRange devuelve vales creados dentro de un rango de fechas.
func (uc *UseCase) ListByDateRange(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.Slip, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.slipRepo.ListByDateRange(from, to, limit, offset)
}

// CountByTypeAndStatus cuenta vales por tipo y estado.
func (uc *UseCase) CountByTypeAndStatus(_ context.Context, slipType, status string) (int64, error) {
	return uc.slipRepo.CountByTypeAndStatus(slipType, status)
}

// CountByCreatedBy cuenta los vales creados por un usuario.
func (uc *UseCase) CountByCreatedBy(_ context.Context, createdBy string) (int64, error) {
	if createdBy == "" {
		return 0, domain.ErrMissingField
	}
	return uc.slipRepo.CountByCreatedBy(createdBy)
}

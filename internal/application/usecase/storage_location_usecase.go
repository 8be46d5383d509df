package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StorageLocationUseCase casos de uso CRUD para ubicaciones de almacenaje.
type StorageLocationUseCase struct {
	repo          repository.StorageLocationRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStorageLocationUseCase construye el caso de uso.
func NewStorageLocationUseCase(
	repo repository.StorageLocationRepository,
	warehouseRepo repository.WarehouseRepository,
) *StorageLocationUseCase {
	return &StorageLocationUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea una ubicación. El código es único y la bodega debe existir.
func (uc *StorageLocationUseCase) Create(in dto.CreateStorageLocationRequest) (*dto.StorageLocationResponse, error) {
	if in.Code == "" || in.WarehouseID == "" {
		return nil, domain.ErrMissingField
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	location := &entity.StorageLocation{
		ID:          uuid.New().String(),
		Code:        in.Code,
		WarehouseID: in.WarehouseID,
		Status:      entity.LocationStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *StorageLocationUseCase) GetByID(id string) (*dto.StorageLocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return toLocationResponse(location), nil
}

// GetByCode obtiene una ubicación por su código.
func (uc *StorageLocationUseCase) GetByCode(code string) (*dto.StorageLocationResponse, error) {
	location, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return toLocationResponse(location), nil
}

// Update cambia el estado de la ubicación (el código es inmutable).
func (uc *StorageLocationUseCase) Update(id string, in dto.UpdateStorageLocationRequest) (*dto.StorageLocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.LocationStatusActive, entity.LocationStatusInactive:
			location.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones, opcionalmente filtradas por bodega.
func (uc *StorageLocationUseCase) List(warehouseID string, limit, offset int) (*dto.StorageLocationListResponse, error) {
	var (
		list []*entity.StorageLocation
		err  error
	)
	if warehouseID != "" {
		list, err = uc.repo.ListByWarehouse(warehouseID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageLocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.StorageLocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toLocationResponse(l *entity.StorageLocation) *dto.StorageLocationResponse {
	if l == nil {
		return nil
	}
	return &dto.StorageLocationResponse{
		ID:          l.ID,
		Code:        l.Code,
		WarehouseID: l.WarehouseID,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

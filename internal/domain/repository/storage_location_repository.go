package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StorageLocationRepository define el puerto de persistencia para StorageLocation.
// El núcleo resuelve ubicaciones (código → identidad) pero nunca las muta.
type StorageLocationRepository interface {
	Create(location *entity.StorageLocation) error
	GetByID(id string) (*entity.StorageLocation, error)
	GetByCode(code string) (*entity.StorageLocation, error)
	Update(location *entity.StorageLocation) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StorageLocation, error)
	List(limit, offset int) ([]*entity.StorageLocation, error)
}

package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByName(name string) (*entity.Item, error)
	ExistsByID(id string) (bool, error)
	ExistsByName(name string) (bool, error)
	Update(item *entity.Item) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Item, error)
	SearchByName(name string, limit, offset int) ([]*entity.Item, error)
}

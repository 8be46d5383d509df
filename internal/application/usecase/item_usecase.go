package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos.
type ItemUseCase struct {
	repo      repository.ItemRepository
	stockRepo repository.StockRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, stockRepo repository.StockRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea un nuevo artículo. El nombre debe ser único.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrMissingField
	}
	exists, err := uc.repo.ExistsByName(in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      in.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza nombre o unidad. El nombre no puede chocar con otro artículo.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.Name != nil && *in.Name != item.Name {
		other, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
		item.Name = *in.Name
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un artículo solo si no tiene registros de stock.
func (uc *ItemUseCase) Delete(id string) error {
	exists, err := uc.repo.ExistsByID(id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrItemNotFound
	}
	stocks, err := uc.stockRepo.ListByItem(id)
	if err != nil {
		return err
	}
	if len(stocks) > 0 {
		return domain.ErrItemHasStock
	}
	return uc.repo.Delete(id)
}

// List lista artículos con paginación.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list, limit, offset), nil
}

// SearchByName busca artículos por nombre (contiene, sin mayúsculas).
func (uc *ItemUseCase) SearchByName(name string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.SearchByName(name, limit, offset)
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list, limit, offset), nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Unit:      i.Unit,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func toItemListResponse(list []*entity.Item, limit, offset int) *dto.ItemListResponse {
	items := make([]dto.ItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toItemResponse(i))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

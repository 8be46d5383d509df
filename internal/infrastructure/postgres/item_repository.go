package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = "id, name, unit, created_at, updated_at"

// Create persiste un artículo nuevo.
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, name, unit, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.Name, item.Unit)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.get(query, id)
}

// GetByName obtiene un artículo por nombre exacto. Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`
	return r.get(query, name)
}

// ExistsByID verifica existencia por ID.
func (r *ItemRepo) ExistsByID(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists item by id: %w", err)
	}
	return exists, nil
}

// ExistsByName verifica existencia por nombre.
func (r *ItemRepo) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM items WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists item by name: %w", err)
	}
	return exists, nil
}

// Update actualiza nombre y unidad de un artículo.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, unit = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, item.ID, item.Name, item.Unit)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete elimina un artículo. El caso de uso ya verificó que no tenga stock.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// List lista artículos paginados por nombre.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// SearchByName busca artículos por coincidencia parcial de nombre (ILIKE).
func (r *ItemRepo) SearchByName(name string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, name, limit, offset)
}

func (r *ItemRepo) get(query string, args ...any) (*entity.Item, error) {
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&i.ID, &i.Name, &i.Unit, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Unit, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

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

var _ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)

// StorageLocationRepo implementación de StorageLocationRepository sobre PostgreSQL.
type StorageLocationRepo struct {
	q Querier
}

// NewStorageLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewStorageLocationRepository(q Querier) *StorageLocationRepo {
	return &StorageLocationRepo{q: q}
}

const locationColumns = "id, code, warehouse_id, status, created_at, updated_at"

// Create persiste una ubicación nueva. El código es único.
func (r *StorageLocationRepo) Create(location *entity.StorageLocation) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO storage_locations (id, code, warehouse_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.WarehouseID, location.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create storage location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID. Devuelve nil, nil si no existe.
func (r *StorageLocationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM storage_locations WHERE id = $1`
	return r.get(query, id)
}

// GetByCode obtiene una ubicación por su código. Devuelve nil, nil si no existe.
func (r *StorageLocationRepo) GetByCode(code string) (*entity.StorageLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM storage_locations WHERE code = $1`
	return r.get(query, code)
}

// Update actualiza el estado de una ubicación. Código y bodega son inmutables.
func (r *StorageLocationRepo) Update(location *entity.StorageLocation) error {
	query := `
		UPDATE storage_locations SET status = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, location.ID, location.Status)
	if err != nil {
		return fmt.Errorf("update storage location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// ListByWarehouse lista las ubicaciones de una bodega, paginadas por código.
func (r *StorageLocationRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StorageLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM storage_locations WHERE warehouse_id = $1
		ORDER BY code LIMIT $2 OFFSET $3`
	return r.list(query, warehouseID, limit, offset)
}

// List lista todas las ubicaciones paginadas por código.
func (r *StorageLocationRepo) List(limit, offset int) ([]*entity.StorageLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM storage_locations ORDER BY code LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *StorageLocationRepo) get(query string, args ...any) (*entity.StorageLocation, error) {
	var l entity.StorageLocation
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.Code, &l.WarehouseID, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &l, nil
}

func (r *StorageLocationRepo) list(query string, args ...any) ([]*entity.StorageLocation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var l entity.StorageLocation
		if err := rows.Scan(&l.ID, &l.Code, &l.WarehouseID, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SlipRepository = (*SlipRepo)(nil)

// SlipRepo implementación de SlipRepository sobre PostgreSQL (usable con pool o tx).
type SlipRepo struct {
	q Querier
}

// NewSlipRepository construye el adaptador de vales. Pasar pool o tx (Querier).
func NewSlipRepository(q Querier) *SlipRepo {
	return &SlipRepo{q: q}
}

const slipColumns = "id, type, status, created_by, created_at, updated_at"

// Create persiste un vale nuevo.
func (r *SlipRepo) Create(slip *entity.Slip) error {
	if slip.ID == "" {
		slip.ID = uuid.New().String()
	}
	query := `
		INSERT INTO slips (id, type, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	createdBy := (*string)(nil)
	if slip.CreatedBy != "" {
		createdBy = &slip.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query, slip.ID, slip.Type, slip.Status, createdBy)
	if err != nil {
		return fmt.Errorf("create slip: %w", err)
	}
	return nil
}

// GetByID obtiene un vale por ID. Devuelve nil, nil si no existe.
func (r *SlipRepo) GetByID(id string) (*entity.Slip, error) {
	query := `SELECT ` + slipColumns + ` FROM slips WHERE id = $1`
	var s entity.Slip
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Type, &s.Status, &createdBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slip: %w", err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}
	return &s, nil
}

// TransitionStatus cambia el estado solo si el actual es `from`. El UPDATE
// condicional decide la carrera entre completar y cancelar concurrentes:
// exactamente una de las dos transacciones ve RowsAffected = 1.
func (r *SlipRepo) TransitionStatus(id, from, to string) (bool, error) {
	query := `
		UPDATE slips SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("transition slip status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List lista vales paginados, más reciente primero.
func (r *SlipRepo) List(limit, offset int) ([]*entity.Slip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM slips ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByType lista vales de un tipo.
func (r *SlipRepo) ListByType(slipType string, limit, offset int) ([]*entity.Slip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM slips WHERE type = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, slipType, limit, offset)
}

// ListByStatus lista vales en un estado.
func (r *SlipRepo) ListByStatus(status string, limit, offset int) ([]*entity.Slip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM slips WHERE status = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByCreatedBy lista vales creados por un usuario.
func (r *SlipRepo) ListByCreatedBy(createdBy string, limit, offset int) ([]*entity.Slip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM slips WHERE created_by = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, createdBy, limit, offset)
}

// ListByDateRange lista vales creados dentro de un rango de fechas (inclusive).
func (r *SlipRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Slip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM slips WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.list(query, from, to, limit, offset)
}

// CountByTypeAndStatus cuenta vales por tipo y estado. Tipo o estado vacíos no filtran.
func (r *SlipRepo) CountByTypeAndStatus(slipType, status string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM slips
		WHERE ($1 = '' OR type = $1) AND ($2 = '' OR status = $2)`
	var count int64
	if err := r.q.QueryRow(context.Background(), query, slipType, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count slips: %w", err)
	}
	return count, nil
}

// CountByCreatedBy cuenta los vales creados por un usuario.
func (r *SlipRepo) CountByCreatedBy(createdBy string) (int64, error) {
	query := `SELECT COUNT(*) FROM slips WHERE created_by = $1`
	var count int64
	if err := r.q.QueryRow(context.Background(), query, createdBy).Scan(&count); err != nil {
		return 0, fmt.Errorf("count slips by creator: %w", err)
	}
	return count, nil
}

func (r *SlipRepo) list(query string, args ...any) ([]*entity.Slip, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slips: %w", err)
	}
	defer rows.Close()
	var list []*entity.Slip
	for rows.Next() {
		var s entity.Slip
		var createdBy *string
		if err := rows.Scan(&s.ID, &s.Type, &s.Status, &createdBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slip: %w", err)
		}
		if createdBy != nil {
			s.CreatedBy = *createdBy
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

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

var _ repository.SlipDetailRepository = (*SlipDetailRepo)(nil)

// SlipDetailRepo implementación de SlipDetailRepository sobre PostgreSQL.
type SlipDetailRepo struct {
	q Querier
}

// NewSlipDetailRepository construye el adaptador de líneas de vale. Pasar pool o tx (Querier).
func NewSlipDetailRepository(q Querier) *SlipDetailRepo {
	return &SlipDetailRepo{q: q}
}

const detailColumns = `id, slip_id, line_number, item_id,
	from_warehouse_id, from_storage_location_id, to_warehouse_id, to_storage_location_id,
	quantity_change, status, note, created_at, updated_at`

// Create persiste una línea de vale.
func (r *SlipDetailRepo) Create(detail *entity.SlipDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO slip_details (id, slip_id, line_number, item_id,
			from_warehouse_id, from_storage_location_id, to_warehouse_id, to_storage_location_id,
			quantity_change, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.SlipID, detail.LineNumber, detail.ItemID,
		nullable(detail.FromWarehouseID), nullable(detail.FromStorageLocationID),
		nullable(detail.ToWarehouseID), nullable(detail.ToStorageLocationID),
		detail.QuantityChange, detail.Status, detail.Note,
	)
	if err != nil {
		return fmt.Errorf("create slip detail: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID. Devuelve nil, nil si no existe.
func (r *SlipDetailRepo) GetByID(id string) (*entity.SlipDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM slip_details WHERE id = $1`
	var d entity.SlipDetail
	if err := r.scanRow(r.q.QueryRow(context.Background(), query, id), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slip detail: %w", err)
	}
	return &d, nil
}

// ListBySlip lista las líneas de un vale en orden de línea.
func (r *SlipDetailRepo) ListBySlip(slipID string) ([]*entity.SlipDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM slip_details WHERE slip_id = $1
		ORDER BY line_number`
	return r.list(query, slipID)
}

// ListBySlipAndStatus lista las líneas de un vale en un estado.
func (r *SlipDetailRepo) ListBySlipAndStatus(slipID, status string) ([]*entity.SlipDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM slip_details WHERE slip_id = $1 AND status = $2
		ORDER BY line_number`
	return r.list(query, slipID, status)
}

// ClaimPending reclama una línea para procesarla: PENDING → PROCESSING con
// UPDATE condicionado. RowsAffected = 1 significa que esta llamada ganó el
// reclamo; una línea encolada dos veces solo se aplica una vez.
func (r *SlipDetailRepo) ClaimPending(id string) (bool, error) {
	query := `
		UPDATE slip_details SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.DetailStatusProcessing, entity.DetailStatusPending)
	if err != nil {
		return false, fmt.Errorf("claim slip detail: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateStatus cambia el estado de una línea.
func (r *SlipDetailRepo) UpdateStatus(id, status string) error {
	query := `UPDATE slip_details SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update slip detail status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CancelPending marca CANCELLED todas las líneas PENDING de un vale
// (cascada al cancelar el vale). Devuelve cuántas líneas cambió.
func (r *SlipDetailRepo) CancelPending(slipID string) (int64, error) {
	query := `
		UPDATE slip_details SET status = $2, updated_at = now()
		WHERE slip_id = $1 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query,
		slipID, entity.DetailStatusCancelled, entity.DetailStatusPending)
	if err != nil {
		return 0, fmt.Errorf("cancel pending slip details: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlipDetailRepo) scanRow(row pgx.Row, d *entity.SlipDetail) error {
	var fromWh, fromLoc, toWh, toLoc *string
	err := row.Scan(
		&d.ID, &d.SlipID, &d.LineNumber, &d.ItemID,
		&fromWh, &fromLoc, &toWh, &toLoc,
		&d.QuantityChange, &d.Status, &d.Note, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	d.FromWarehouseID = deref(fromWh)
	d.FromStorageLocationID = deref(fromLoc)
	d.ToWarehouseID = deref(toWh)
	d.ToStorageLocationID = deref(toLoc)
	return nil
}

func (r *SlipDetailRepo) list(query string, args ...any) ([]*entity.SlipDetail, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slip details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SlipDetail
	for rows.Next() {
		var d entity.SlipDetail
		if err := r.scanRow(rows, &d); err != nil {
			return nil, fmt.Errorf("scan slip detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func setupSlipRepo(t *testing.T) (*SlipRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewSlipRepository(mock), mock
}

func slipCols() []string {
	return []string{"id", "type", "status", "created_by", "created_at", "updated_at"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestSlipRepo_Create_ConUsuario(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	createdBy := "user-1"
	mock.ExpectExec("INSERT INTO slips").
		WithArgs("slip-1", entity.SlipTypeInbound, entity.SlipStatusDraft, &createdBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(&entity.Slip{
		ID:        "slip-1",
		Type:      entity.SlipTypeInbound,
		Status:    entity.SlipStatusDraft,
		CreatedBy: createdBy,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Sin usuario el created_by se inserta como NULL, no como cadena vacía.
func TestSlipRepo_Create_SinUsuario(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO slips").
		WithArgs("slip-1", entity.SlipTypeScrap, entity.SlipStatusDraft, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(&entity.Slip{
		ID:     "slip-1",
		Type:   entity.SlipTypeScrap,
		Status: entity.SlipStatusDraft,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlipRepo_GetByID_Existente(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	createdBy := "user-1"
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM slips WHERE id").
		WithArgs("slip-1").
		WillReturnRows(pgxmock.NewRows(slipCols()).
			AddRow("slip-1", entity.SlipTypeTransfer, entity.SlipStatusDraft, &createdBy, now, now))

	slip, err := repo.GetByID("slip-1")
	require.NoError(t, err)
	require.NotNil(t, slip)
	assert.Equal(t, entity.SlipTypeTransfer, slip.Type)
	assert.Equal(t, "user-1", slip.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlipRepo_GetByID_Inexistente(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	mock.ExpectQuery("FROM slips WHERE id").
		WithArgs("no-existe").
		WillReturnError(pgx.ErrNoRows)

	slip, err := repo.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, slip)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// TransitionStatus
// ──────────────────────────────────────────────────────────────────────────────

// El UPDATE solo toca la fila si el estado actual coincide: RowsAffected = 1
// significa que esta llamada ganó la transición.
func TestSlipRepo_TransitionStatus_Gana(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE slips SET status").
		WithArgs("slip-1", entity.SlipStatusDraft, entity.SlipStatusCompleted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.TransitionStatus("slip-1", entity.SlipStatusDraft, entity.SlipStatusCompleted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// RowsAffected = 0: otro llegó primero (o el vale no existe). El repositorio
// no distingue los dos casos; eso lo decide el caso de uso releyendo el vale.
func TestSlipRepo_TransitionStatus_Pierde(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE slips SET status").
		WithArgs("slip-1", entity.SlipStatusDraft, entity.SlipStatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.TransitionStatus("slip-1", entity.SlipStatusDraft, entity.SlipStatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestSlipRepo_CountByTypeAndStatus_FiltrosVaciosNoFiltran(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("", "").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountByTypeAndStatus("", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlipRepo_CountByCreatedBy(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.CountByCreatedBy("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// Reclamo de líneas
// ──────────────────────────────────────────────────────────────────────────────

// El reclamo es un UPDATE condicionado a PENDING: solo un worker lo gana.
func TestSlipDetailRepo_ClaimPending_Gana(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSlipDetailRepository(mock)

	mock.ExpectExec("UPDATE slip_details SET status").
		WithArgs("det-1", entity.DetailStatusProcessing, entity.DetailStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.ClaimPending("det-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// RowsAffected = 0: otro worker ya reclamó (o cerró) la línea; quien pierde
// no debe aplicarla.
func TestSlipDetailRepo_ClaimPending_YaReclamada(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSlipDetailRepository(mock)

	mock.ExpectExec("UPDATE slip_details SET status").
		WithArgs("det-1", entity.DetailStatusProcessing, entity.DetailStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.ClaimPending("det-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlipRepo_ListByStatus(t *testing.T) {
	repo, mock := setupSlipRepo(t)
	defer mock.Close()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	createdBy := "user-1"
	rows := pgxmock.NewRows(slipCols()).
		AddRow("slip-2", entity.SlipTypeOutbound, entity.SlipStatusDraft, &createdBy, now, now).
		AddRow("slip-1", entity.SlipTypeInbound, entity.SlipStatusDraft, (*string)(nil), now.Add(-time.Hour), now)
	mock.ExpectQuery("FROM slips WHERE status").
		WithArgs(entity.SlipStatusDraft, 50, 0).
		WillReturnRows(rows)

	list, err := repo.ListByStatus(entity.SlipStatusDraft, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "slip-2", list[0].ID)
	assert.Empty(t, list[1].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de violación de constraint único.
const codeUniqueViolation = "23505"

// isUniqueViolation indica si el error proviene de un constraint único
// (nombre de artículo, código de ubicación, email de usuario).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/pkg/config"
)

// Dimensionado del pool. El motor de inventario mantiene transacciones
// cortas (lock de fila + dos escrituras), así que conexiones de sobra
// importan menos que reciclarlas a tiempo.
const (
	poolMaxConns        = 25
	poolMinConns        = 2
	poolConnLifetime    = time.Hour
	poolConnIdleTime    = 30 * time.Minute
	poolHealthCheckTick = time.Minute
)

// NewPool crea el pool de conexiones PostgreSQL y verifica conectividad.
// Las cantidades de stock son NUMERIC: cada conexión registra el codec de
// shopspring/decimal para que nunca pasen por float64.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = poolMaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = poolConnLifetime
	poolConfig.MaxConnIdleTime = poolConnIdleTime
	poolConfig.HealthCheckPeriod = poolHealthCheckTick
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

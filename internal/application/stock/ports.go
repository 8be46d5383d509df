package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: o se escriben stock y movimientos juntos, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// LocationResolver resuelve códigos de ubicación a su identidad
// (ubicación + bodega) y la inversa. Colaborador externo al núcleo;
// puede cachear porque las ubicaciones no cambian de código.
type LocationResolver interface {
	// Resolve devuelve la ubicación para un código, o domain.ErrLocationNotFound.
	Resolve(ctx context.Context, code string) (*entity.StorageLocation, error)
	// CodeOf devuelve el código de una ubicación por ID, o domain.ErrLocationNotFound.
	CodeOf(ctx context.Context, storageLocationID string) (string, error)
}

// MovementPublisher publica asientos de movimiento ya confirmados hacia un
// broker de eventos. La publicación es best-effort: un fallo se registra en
// el log pero nunca revierte ni falla la operación de inventario.
type MovementPublisher interface {
	PublishMovement(ctx context.Context, movement *entity.StockMovement) error
}

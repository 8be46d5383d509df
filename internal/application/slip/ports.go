package slip

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de vale atados a esa tx: el vale y sus líneas se crean (o
// transicionan) de forma atómica.
type TxRunner interface {
	RunSlip(ctx context.Context, fn func(
		slipRepo repository.SlipRepository,
		detailRepo repository.SlipDetailRepository,
	) error) error
}

// Operations son las operaciones de inventario que el procesamiento de
// líneas despacha según el tipo de vale. Las implementa
// stock.OperationsUseCase.
type Operations interface {
	Inbound(ctx context.Context, in stock.MovementInput) error
	Outbound(ctx context.Context, in stock.MovementInput) error
	Transfer(ctx context.Context, in stock.MovementInput) error
	Freeze(ctx context.Context, in stock.MovementInput) error
	Scrap(ctx context.Context, in stock.MovementInput) error
}

package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre stock e historial de
// movimientos. Van directo al pool, fuera de transacción.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
	resolver  LocationResolver
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	resolver LocationResolver,
) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo, resolver: resolver}
}

// GetStock devuelve el stock de un artículo en una ubicación (por código).
// Si no hay fila devuelve cantidad cero, igual que el repositorio.
func (uc *QueryUseCase) GetStock(ctx context.Context, itemID, locationCode string) (*entity.Stock, error) {
	loc, err := uc.resolver.Resolve(ctx, locationCode)
	if err != nil {
		return nil, err
	}
	return uc.stockRepo.Get(itemID, loc.ID)
}

// StocksByItem devuelve todas las filas de stock de un artículo.
func (uc *QueryUseCase) StocksByItem(_ context.Context, itemID string) ([]*entity.Stock, error) {
	return uc.stockRepo.ListByItem(itemID)
}

// StocksByLocation devuelve todas las filas de stock de una ubicación (por código).
func (uc *QueryUseCase) StocksByLocation(ctx context.Context, locationCode string) ([]*entity.Stock, error) {
	loc, err := uc.resolver.Resolve(ctx, locationCode)
	if err != nil {
		return nil, err
	}
	return uc.stockRepo.ListByLocation(loc.ID)
}

// TotalStock devuelve la cantidad total de un artículo sumando todas sus ubicaciones.
func (uc *QueryUseCase) TotalStock(_ context.Context, itemID string) (decimal.Decimal, error) {
	return uc.stockRepo.TotalByItem(itemID)
}

// LowStocks devuelve las filas con cantidad por debajo del umbral.
func (uc *QueryUseCase) LowStocks(_ context.Context, threshold decimal.Decimal) ([]*entity.Stock, error) {
	return uc.stockRepo.ListBelow(threshold)
}

// ZeroStocks devuelve las filas con cantidad exactamente cero.
func (uc *QueryUseCase) ZeroStocks(_ context.Context) ([]*entity.Stock, error) {
	return uc.stockRepo.ListZero()
}

// Locations devuelve los códigos de ubicación que tienen filas de stock.
func (uc *QueryUseCase) Locations(_ context.Context) ([]string, error) {
	return uc.stockRepo.ListDistinctLocationCodes()
}

// MovementsByItem devuelve el historial de movimientos de un artículo.
func (uc *QueryUseCase) MovementsByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByItem(itemID, limit, offset)
}

// MovementsByLocation devuelve el historial de movimientos de una ubicación (por código).
func (uc *QueryUseCase) MovementsByLocation(ctx context.Context, locationCode string, limit, offset int) ([]*entity.StockMovement, error) {
	loc, err := uc.resolver.Resolve(ctx, locationCode)
	if err != nil {
		return nil, err
	}
	return uc.movRepo.ListByLocation(loc.ID, limit, offset)
}

// MovementsBySlip devuelve los asientos generados por un vale.
func (uc *QueryUseCase) MovementsBySlip(_ context.Context, slipID string) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListBySlip(slipID)
}

// RecentMovements devuelve los últimos asientos del libro.
func (uc *QueryUseCase) RecentMovements(_ context.Context, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.movRepo.ListRecent(limit)
}

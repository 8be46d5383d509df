package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// VirtualLocations códigos de las ubicaciones virtuales pre-aprovisionadas.
// Para el libro de movimientos son ubicaciones normales: acumulan filas de
// stock e historial igual que cualquier otra.
type VirtualLocations struct {
	FreezeCode string // ej. "FREEZE_WH"
	ScrapCode  string // ej. "SCRAP_WH"
}

// OperationsUseCase ejecuta las operaciones de inventario (entrada, salida,
// traslado, congelado, merma, descongelado) de forma transaccional, con
// bloqueo de fila (SELECT FOR UPDATE) sobre la clave (artículo, ubicación).
// Cada operación es todo-o-nada aunque toque dos ubicaciones.
type OperationsUseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	resolver  LocationResolver
	publisher MovementPublisher // opcional; nil desactiva eventos
	log       *logger.Logger
	virtual   VirtualLocations
}

// NewOperationsUseCase construye el caso de uso.
func NewOperationsUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	resolver LocationResolver,
	publisher MovementPublisher,
	log *logger.Logger,
	virtual VirtualLocations,
) *OperationsUseCase {
	return &OperationsUseCase{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		resolver:  resolver,
		publisher: publisher,
		log:       log,
		virtual:   virtual,
	}
}

// MovementInput entrada para una operación de inventario.
// Inbound usa ToLocation; Outbound/Freeze/Scrap usan FromLocation;
// Transfer usa ambas; Unfreeze usa ToLocation (el origen es el congelado).
// SlipID enlaza los asientos con el vale que los originó; vacío en
// operaciones directas.
type MovementInput struct {
	ItemID       string
	FromLocation string
	ToLocation   string
	Quantity     decimal.Decimal
	Note         string
	SlipID       string
}

// Inbound registra una entrada de stock en ToLocation.
func (uc *OperationsUseCase) Inbound(ctx context.Context, in MovementInput) error {
	if err := uc.validate(ctx, in); err != nil {
		return err
	}
	to, err := uc.resolver.Resolve(ctx, in.ToLocation)
	if err != nil {
		return err
	}
	movs, err := uc.runOperation(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, txID string, now time.Time) ([]*entity.StockMovement, error) {
		m, err := uc.apply(stockRepo, movRepo, to, entity.MovementTypeInbound, in, txID, now)
		if err != nil {
			return nil, err
		}
		return []*entity.StockMovement{m}, nil
	})
	if err != nil {
		return err
	}
	uc.afterCommit(ctx, "inbound", in, movs)
	return nil
}

// Outbound registra una salida de stock desde FromLocation.
// La verificación autoritativa de suficiencia ocurre dentro de la
// transacción, con la fila bloqueada.
func (uc *OperationsUseCase) Outbound(ctx context.Context, in MovementInput) error {
	if err := uc.validate(ctx, in); err != nil {
		return err
	}
	from, err := uc.resolver.Resolve(ctx, in.FromLocation)
	if err != nil {
		return err
	}
	movs, err := uc.runOperation(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, txID string, now time.Time) ([]*entity.StockMovement, error) {
		m, err := uc.apply(stockRepo, movRepo, from, entity.MovementTypeOutbound, in, txID, now)
		if err != nil {
			return nil, err
		}
		return []*entity.StockMovement{m}, nil
	})
	if err != nil {
		return err
	}
	uc.afterCommit(ctx, "outbound", in, movs)
	return nil
}

// Transfer mueve stock de FromLocation a ToLocation en una sola transacción:
// si la segunda pata falla, la primera también se revierte.
func (uc *OperationsUseCase) Transfer(ctx context.Context, in MovementInput) error {
	if err := uc.validate(ctx, in); err != nil {
		return err
	}
	if in.FromLocation == in.ToLocation {
		return domain.ErrSameLocation
	}
	from, err := uc.resolver.Resolve(ctx, in.FromLocation)
	if err != nil {
		return err
	}
	to, err := uc.resolver.Resolve(ctx, in.ToLocation)
	if err != nil {
		return err
	}
	if from.ID == to.ID {
		return domain.ErrSameLocation
	}
	note := fmt.Sprintf("traslado %s -> %s", in.FromLocation, in.ToLocation)
	if in.Note != "" {
		note += ": " + in.Note
	}
	in.Note = note
	movs, err := uc.twoLegOperation(ctx, in, from, to)
	if err != nil {
		return err
	}
	uc.afterCommit(ctx, "transfer", in, movs)
	return nil
}

// Freeze traslada stock de FromLocation a la ubicación virtual de congelado.
func (uc *OperationsUseCase) Freeze(ctx context.Context, in MovementInput) error {
	in.ToLocation = uc.virtual.FreezeCode
	if err := uc.validate(ctx, in); err != nil {
		return err
	}
	from, err := uc.resolver.Resolve(ctx, in.FromLocation)
	if err != nil {
		return err
	}
	freeze, err := uc.resolver.Resolve(ctx, uc.virtual.FreezeCode)
	if err != nil {
		return err
	}
	in.Note = prefixNote(fmt.Sprintf("congelado %s -> %s", in.FromLocation, uc.virtual.FreezeCode), in.Note)
	movs, err := uc.twoLegOperation(ctx, in, from, freeze)
	if err != nil {
		return err
	}
	uc.afterCommit(ctx, "freeze", in, movs)
	return nil
}

// Scrap traslada stock de FromLocation a la ubicación virtual de merma.
func (uc *OperationsUseCase) Scrap(ctx context.Context, in MovementInput) error {
	in.ToLocation = uc.virtual.ScrapCode
	if err := uc.validate(ctx, in); err != nil {
		return err
	}
	from, err := uc.resolver.Resolve(ctx, in.FromLocation)
	if err != nil {
		return err
	}
	scrap, err := uc.resolver.Resolve(ctx, uc.virtual.ScrapCode)
	if err != nil {
		return err
	}
	in.Note = prefixNote(fmt.Sprintf("merma %s -> %s", in.FromLocation, uc.virtual.ScrapCode), in.Note)
	movs, err := uc.twoLegOperation(ctx, in, from, scrap)
	if err != nil {
		return err
	}
	uc.afterCommit(ctx, "scrap", in, movs)
	return nil
}

// Unfreeze devuelve stock desde la ubicación virtual de congelado a ToLocation.
func (uc *OperationsUseCase) Unfreeze(ctx context.Context, in MovementInput) error {
	in.FromLocation = uc.virtual.FreezeCode
	if err := uc.validate(ctx, in); err != nil {
		return err
	}
	freeze, err := uc.resolver.Resolve(ctx, uc.virtual.FreezeCode)
	if err != nil {
		return err
	}
	to, err := uc.resolver.Resolve(ctx, in.ToLocation)
	if err != nil {
		return err
	}
	in.Note = prefixNote(fmt.Sprintf("descongelado %s -> %s", uc.virtual.FreezeCode, in.ToLocation), in.Note)
	movs, err := uc.twoLegOperation(ctx, in, freeze, to)
	if err != nil {
		return err
	}
	uc.afterCommit(ctx, "unfreeze", in, movs)
	return nil
}

// validate aplica las pre-condiciones comunes: cantidad estrictamente
// positiva y artículo existente. Se comprueban antes de abrir transacción,
// sin efectos secundarios.
func (uc *OperationsUseCase) validate(ctx context.Context, in MovementInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	exists, err := uc.itemRepo.ExistsByID(in.ItemID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrItemNotFound
	}
	return nil
}

// runOperation abre una transacción, ejecuta fn con repositorios atados a la
// tx y devuelve los asientos creados solo si hubo Commit.
func (uc *OperationsUseCase) runOperation(
	ctx context.Context,
	fn func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, txID string, now time.Time) ([]*entity.StockMovement, error),
) ([]*entity.StockMovement, error) {
	txID := uuid.New().String()
	now := time.Now()
	var movs []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		created, err := fn(stockRepo, movRepo, txID, now)
		if err != nil {
			return err
		}
		movs = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movs, nil
}

// twoLegOperation ejecuta salida en `from` + entrada en `to` dentro de UNA
// transacción (traslado, congelado, merma, descongelado).
func (uc *OperationsUseCase) twoLegOperation(ctx context.Context, in MovementInput, from, to *entity.StorageLocation) ([]*entity.StockMovement, error) {
	return uc.runOperation(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, txID string, now time.Time) ([]*entity.StockMovement, error) {
		out, err := uc.apply(stockRepo, movRepo, from, entity.MovementTypeOutbound, in, txID, now)
		if err != nil {
			return nil, err
		}
		inMov, err := uc.apply(stockRepo, movRepo, to, entity.MovementTypeInbound, in, txID, now)
		if err != nil {
			return nil, err
		}
		return []*entity.StockMovement{out, inMov}, nil
	})
}

// apply es el núcleo del libro: asegura la fila de stock, la bloquea,
// calcula la nueva cantidad con guarda de no-negatividad, persiste y
// escribe el asiento. Debe llamarse siempre dentro de una transacción.
func (uc *OperationsUseCase) apply(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	loc *entity.StorageLocation,
	movType string,
	in MovementInput,
	txID string,
	now time.Time,
) (*entity.StockMovement, error) {
	// La fila en cero debe existir antes del FOR UPDATE: así dos creadores
	// concurrentes bloquean sobre la misma fila en vez de duplicarla.
	if err := stockRepo.CreateIfAbsent(in.ItemID, loc.WarehouseID, loc.ID); err != nil {
		return nil, err
	}
	stock, err := stockRepo.GetForUpdate(in.ItemID, loc.ID)
	if err != nil {
		return nil, err
	}

	var newQuantity decimal.Decimal
	if movType == entity.MovementTypeInbound {
		newQuantity = stock.Quantity.Add(in.Quantity)
	} else {
		newQuantity = stock.Quantity.Sub(in.Quantity)
		if newQuantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInsufficientStock
		}
	}

	stock.Quantity = newQuantity
	stock.WarehouseID = loc.WarehouseID
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:                uuid.New().String(),
		TransactionID:     txID,
		ItemID:            in.ItemID,
		WarehouseID:       loc.WarehouseID,
		StorageLocationID: loc.ID,
		Type:              movType,
		QuantityChange:    in.Quantity,
		Note:              in.Note,
		SlipID:            in.SlipID,
		CreatedAt:         now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// afterCommit publica los asientos confirmados (best-effort) y deja traza.
func (uc *OperationsUseCase) afterCommit(ctx context.Context, op string, in MovementInput, movs []*entity.StockMovement) {
	if uc.publisher != nil {
		for _, m := range movs {
			if err := uc.publisher.PublishMovement(ctx, m); err != nil {
				uc.log.Warn().Err(err).
					Str("movement_id", m.ID).
					Str("operation", op).
					Msg("no se pudo publicar evento de movimiento")
			}
		}
	}
	uc.log.Info().
		Str("operation", op).
		Str("item_id", in.ItemID).
		Str("quantity", in.Quantity.String()).
		Str("from", in.FromLocation).
		Str("to", in.ToLocation).
		Str("slip_id", in.SlipID).
		Int("movements", len(movs)).
		Msg("operación de inventario completada")
}

func prefixNote(prefix, note string) string {
	if note == "" {
		return prefix
	}
	return prefix + ": " + note
}

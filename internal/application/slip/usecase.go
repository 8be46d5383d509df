package slip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// UseCase maneja el ciclo de vida de los vales: creación en borrador,
// cancelación (con cascada a líneas pendientes) y completado, que despacha
// el procesamiento de cada línea al pool de workers.
//
// Completar un vale es definitivo aunque todas sus líneas fallen después:
// el fallo queda aislado en el estado FAILED de cada línea. Comportamiento
// heredado del sistema de origen, mantenido a propósito.
type UseCase struct {
	txRunner   TxRunner
	slipRepo   repository.SlipRepository
	detailRepo repository.SlipDetailRepository
	resolver   stock.LocationResolver
	ops        Operations
	log        *logger.Logger
	proc       *Processor
}

// NewUseCase construye el caso de uso y su pool interno de workers.
// Llamar StartWorkers antes de completar vales y StopWorkers al apagar.
func NewUseCase(
	txRunner TxRunner,
	slipRepo repository.SlipRepository,
	detailRepo repository.SlipDetailRepository,
	resolver stock.LocationResolver,
	ops Operations,
	log *logger.Logger,
	workers, queueSize int,
) *UseCase {
	uc := &UseCase{
		txRunner:   txRunner,
		slipRepo:   slipRepo,
		detailRepo: detailRepo,
		resolver:   resolver,
		ops:        ops,
		log:        log,
	}
	uc.proc = NewProcessor(workers, queueSize, uc.processTask, log)
	return uc
}

// StartWorkers arranca el pool de procesamiento de líneas.
func (uc *UseCase) StartWorkers(ctx context.Context) { uc.proc.Start(ctx) }

// StopWorkers drena la cola y detiene el pool.
func (uc *UseCase) StopWorkers() { uc.proc.Stop() }

// LineInput una línea al crear un vale. Los campos from/to son opcionales
// según el tipo de vale; la validación de cuáles aplican ocurre al procesar.
type LineInput struct {
	ItemID                string
	FromWarehouseID       string
	FromStorageLocationID string
	ToWarehouseID         string
	ToStorageLocationID   string
	Quantity              decimal.Decimal
	Note                  string
}

// CreateInput entrada para crear un vale con sus líneas.
type CreateInput struct {
	Type      string
	CreatedBy string
	Lines     []LineInput
}

// Create persiste un vale en DRAFT con sus líneas en PENDING, todo en una
// transacción. El número de línea sigue el orden recibido.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Slip, []*entity.SlipDetail, error) {
	if !entity.ValidSlipType(in.Type) {
		return nil, nil, domain.ErrInvalidInput
	}
	if len(in.Lines) == 0 {
		return nil, nil, domain.ErrMissingField
	}
	for _, line := range in.Lines {
		if line.ItemID == "" {
			return nil, nil, domain.ErrMissingField
		}
		if line.Quantity.IsZero() {
			return nil, nil, domain.ErrMissingField
		}
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, nil, domain.ErrInvalidQuantity
		}
	}

	now := time.Now()
	slip := &entity.Slip{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Status:    entity.SlipStatusDraft,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	details := make([]*entity.SlipDetail, 0, len(in.Lines))
	for i, line := range in.Lines {
		details = append(details, &entity.SlipDetail{
			ID:                    uuid.New().String(),
			SlipID:                slip.ID,
			LineNumber:            i + 1,
			ItemID:                line.ItemID,
			FromWarehouseID:       line.FromWarehouseID,
			FromStorageLocationID: line.FromStorageLocationID,
			ToWarehouseID:         line.ToWarehouseID,
			ToStorageLocationID:   line.ToStorageLocationID,
			QuantityChange:        line.Quantity,
			Status:                entity.DetailStatusPending,
			Note:                  line.Note,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	}

	err := uc.txRunner.RunSlip(ctx, func(slipRepo repository.SlipRepository, detailRepo repository.SlipDetailRepository) error {
		if err := slipRepo.Create(slip); err != nil {
			return err
		}
		for _, d := range details {
			if err := detailRepo.Create(d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.log.Info().
		Str("slip_id", slip.ID).
		Str("type", slip.Type).
		Str("created_by", slip.CreatedBy).
		Int("lines", len(details)).
		Msg("vale creado")
	return slip, details, nil
}

// Cancel transiciona DRAFT → CANCELLED y cancela en cascada las líneas
// PENDING, en una sola transacción. Desde un estado terminal devuelve
// ErrInvalidSlipTransition.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*entity.Slip, error) {
	var slip *entity.Slip
	err := uc.txRunner.RunSlip(ctx, func(slipRepo repository.SlipRepository, detailRepo repository.SlipDetailRepository) error {
		ok, err := slipRepo.TransitionStatus(id, entity.SlipStatusDraft, entity.SlipStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return uc.transitionError(slipRepo, id)
		}
		if _, err := detailRepo.CancelPending(id); err != nil {
			return err
		}
		slip, err = slipRepo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("slip_id", id).Msg("vale cancelado")
	return slip, nil
}

// Complete transiciona DRAFT → COMPLETED y, con el cambio de estado ya
// confirmado, despacha una tarea por cada línea PENDING al pool. La llamada
// retorna sin esperar el procesamiento de las líneas.
func (uc *UseCase) Complete(ctx context.Context, id string) (*entity.Slip, error) {
	var slip *entity.Slip
	err := uc.txRunner.RunSlip(ctx, func(slipRepo repository.SlipRepository, detailRepo repository.SlipDetailRepository) error {
		ok, err := slipRepo.TransitionStatus(id, entity.SlipStatusDraft, entity.SlipStatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return uc.transitionError(slipRepo, id)
		}
		slip, err = slipRepo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	// El despacho ocurre estrictamente después del commit del estado.
	pending, err := uc.detailRepo.ListBySlipAndStatus(id, entity.DetailStatusPending)
	if err != nil {
		// El vale ya quedó COMPLETED; las líneas siguen PENDING y pueden
		// re-despacharse con Redispatch.
		uc.log.Error().Err(err).Str("slip_id", id).Msg("no se pudieron leer las líneas pendientes")
		return slip, nil
	}
	dispatched := 0
	for _, d := range pending {
		if !uc.proc.Enqueue(Task{Slip: slip, Detail: d}) {
			// Apagado en curso: la línea queda PENDING y se recupera
			// con Redispatch al reiniciar.
			break
		}
		dispatched++
	}
	uc.log.Info().
		Str("slip_id", id).
		Str("type", slip.Type).
		Int("dispatched", dispatched).
		Int("lines", len(pending)).
		Msg("vale completado, líneas despachadas")
	return slip, nil
}

// Redispatch vuelve a encolar las líneas PENDING de un vale COMPLETED
// (recuperación tras reinicio o tras un fallo de lectura en Complete).
func (uc *UseCase) Redispatch(ctx context.Context, id string) (int, error) {
	slip, err := uc.slipRepo.GetByID(id)
	if err != nil {
		return 0, err
	}
	if slip == nil {
		return 0, domain.ErrNotFound
	}
	if slip.Status != entity.SlipStatusCompleted {
		return 0, domain.ErrInvalidSlipTransition
	}
	pending, err := uc.detailRepo.ListBySlipAndStatus(id, entity.DetailStatusPending)
	if err != nil {
		return 0, err
	}
	requeued := 0
	for _, d := range pending {
		if !uc.proc.Enqueue(Task{Slip: slip, Detail: d}) {
			break
		}
		requeued++
	}
	return requeued, nil
}

// transitionError distingue "no existe" de "transición no permitida"
// cuando el UPDATE condicionado no tocó filas.
func (uc *UseCase) transitionError(slipRepo repository.SlipRepository, id string) error {
	slip, err := slipRepo.GetByID(id)
	if err != nil {
		return err
	}
	if slip == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidSlipTransition
}

// processTask aplica una línea contra el libro y registra el resultado en
// la propia línea. Un fallo no se propaga al vale ni a las demás líneas.
// La línea se reclama (PENDING → PROCESSING) antes de tocar el libro: si el
// reclamo no gana, otro worker ya la tiene y esta tarea se descarta.
func (uc *UseCase) processTask(ctx context.Context, t Task) {
	detail := t.Detail
	claimed, err := uc.detailRepo.ClaimPending(detail.ID)
	if err != nil {
		uc.log.Error().Err(err).
			Str("detail_id", detail.ID).
			Msg("no se pudo reclamar la línea")
		return
	}
	if !claimed {
		uc.log.Debug().
			Str("slip_id", detail.SlipID).
			Str("detail_id", detail.ID).
			Int("line", detail.LineNumber).
			Msg("línea ya reclamada, tarea descartada")
		return
	}

	note := fmt.Sprintf("vale %s línea %d", detail.SlipID, detail.LineNumber)
	if detail.Note != "" {
		note += ": " + detail.Note
	}

	err = uc.applyDetail(ctx, t.Slip.Type, detail, note)
	status := entity.DetailStatusProcessed
	result := "processed"
	if err != nil {
		status = entity.DetailStatusFailed
		result = "failed"
		uc.log.Warn().Err(err).
			Str("slip_id", detail.SlipID).
			Str("detail_id", detail.ID).
			Int("line", detail.LineNumber).
			Msg("línea de vale fallida")
	}

	if updateErr := uc.detailRepo.UpdateStatus(detail.ID, status); updateErr != nil {
		uc.log.Error().Err(updateErr).
			Str("detail_id", detail.ID).
			Str("status", status).
			Msg("no se pudo actualizar el estado de la línea")
		return
	}
	detailsProcessed.WithLabelValues(result).Inc()
	if err == nil {
		uc.log.Info().
			Str("slip_id", detail.SlipID).
			Str("detail_id", detail.ID).
			Int("line", detail.LineNumber).
			Msg("línea de vale procesada")
	}
}

// applyDetail resuelve las ubicaciones referidas por la línea y despacha la
// operación de inventario que corresponde al tipo de vale.
func (uc *UseCase) applyDetail(ctx context.Context, slipType string, detail *entity.SlipDetail, note string) error {
	in := stock.MovementInput{
		ItemID:   detail.ItemID,
		Quantity: detail.QuantityChange,
		Note:     note,
		SlipID:   detail.SlipID,
	}
	switch slipType {
	case entity.SlipTypeInbound:
		to, err := uc.locationCode(ctx, detail.ToStorageLocationID)
		if err != nil {
			return err
		}
		in.ToLocation = to
		return uc.ops.Inbound(ctx, in)
	case entity.SlipTypeOutbound:
		from, err := uc.locationCode(ctx, detail.FromStorageLocationID)
		if err != nil {
			return err
		}
		in.FromLocation = from
		return uc.ops.Outbound(ctx, in)
	case entity.SlipTypeTransfer:
		from, err := uc.locationCode(ctx, detail.FromStorageLocationID)
		if err != nil {
			return err
		}
		to, err := uc.locationCode(ctx, detail.ToStorageLocationID)
		if err != nil {
			return err
		}
		in.FromLocation = from
		in.ToLocation = to
		return uc.ops.Transfer(ctx, in)
	case entity.SlipTypeFreeze:
		from, err := uc.locationCode(ctx, detail.FromStorageLocationID)
		if err != nil {
			return err
		}
		in.FromLocation = from
		return uc.ops.Freeze(ctx, in)
	case entity.SlipTypeScrap:
		from, err := uc.locationCode(ctx, detail.FromStorageLocationID)
		if err != nil {
			return err
		}
		in.FromLocation = from
		return uc.ops.Scrap(ctx, in)
	default:
		return domain.ErrInvalidInput
	}
}

// locationCode traduce el ID de ubicación que carga la línea al código que
// consumen las operaciones de inventario.
func (uc *UseCase) locationCode(ctx context.Context, storageLocationID string) (string, error) {
	if storageLocationID == "" {
		return "", domain.ErrMissingField
	}
	code, err := uc.resolver.CodeOf(ctx, storageLocationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrLocationNotFound
		}
		return "", err
	}
	return code, nil
}

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var _ stock.MovementPublisher = (*Producer)(nil)

// movementEvent es el payload publicado por cada asiento confirmado.
type movementEvent struct {
	ID                string          `json:"id"`
	TransactionID     string          `json:"transaction_id"`
	ItemID            string          `json:"item_id"`
	WarehouseID       string          `json:"warehouse_id"`
	StorageLocationID string          `json:"storage_location_id"`
	Type              string          `json:"type"`
	QuantityChange    decimal.Decimal `json:"quantity_change"`
	Note              string          `json:"note,omitempty"`
	SlipID            string          `json:"slip_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Producer publica asientos de movimiento a Kafka. Solo recibe movimientos
// ya confirmados en BD; un fallo aquí no afecta la operación de origen.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer construye el productor para el tópico de movimientos.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishMovement publica un asiento. La clave es el item para mantener
// orden por artículo dentro de cada partición.
func (p *Producer) PublishMovement(ctx context.Context, movement *entity.StockMovement) error {
	payload, err := json.Marshal(movementEvent{
		ID:                movement.ID,
		TransactionID:     movement.TransactionID,
		ItemID:            movement.ItemID,
		WarehouseID:       movement.WarehouseID,
		StorageLocationID: movement.StorageLocationID,
		Type:              movement.Type,
		QuantityChange:    movement.QuantityChange,
		Note:              movement.Note,
		SlipID:            movement.SlipID,
		CreatedAt:         movement.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal movement event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(movement.ItemID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish movement event: %w", err)
	}
	return nil
}

// Close cierra el writer y vacía los lotes pendientes.
func (p *Producer) Close() error {
	return p.writer.Close()
}

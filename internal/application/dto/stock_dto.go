package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockOperationRequest cuerpo para las operaciones de inventario directas.
// Inbound usa to_location; Outbound/Freeze/Scrap usan from_location;
// Transfer usa ambas; Unfreeze usa to_location.
type StockOperationRequest struct {
	ItemID       string          `json:"item_id"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Quantity     decimal.Decimal `json:"quantity"`
	Note         string          `json:"note"`
}

// StockResponse fila de stock en la API.
type StockResponse struct {
	ItemID            string          `json:"item_id"`
	WarehouseID       string          `json:"warehouse_id"`
	StorageLocationID string          `json:"storage_location_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockMovementResponse asiento del libro de movimientos en la API.
type StockMovementResponse struct {
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

// TotalStockResponse total de un artículo en todas sus ubicaciones.
type TotalStockResponse struct {
	ItemID string          `json:"item_id"`
	Total  decimal.Decimal `json:"total"`
}

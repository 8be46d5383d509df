package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlipLineRequest una línea al crear un vale. Los campos from/to aplican
// según el tipo: INBOUND solo to, OUTBOUND/FREEZE/SCRAP solo from,
// TRANSFER ambos.
type SlipLineRequest struct {
	ItemID                string          `json:"item_id"`
	FromWarehouseID       string          `json:"from_warehouse_id"`
	FromStorageLocationID string          `json:"from_storage_location_id"`
	ToWarehouseID         string          `json:"to_warehouse_id"`
	ToStorageLocationID   string          `json:"to_storage_location_id"`
	Quantity              decimal.Decimal `json:"quantity"`
	Note                  string          `json:"note"`
}

// CreateSlipRequest cuerpo para crear un vale con sus líneas.
type CreateSlipRequest struct {
	Type  string            `json:"type"` // INBOUND, OUTBOUND, TRANSFER, FREEZE, SCRAP
	Lines []SlipLineRequest `json:"lines"`
}

// SlipResponse representación de un vale en la API.
type SlipResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlipDetailResponse una línea de vale con su estado de procesamiento.
type SlipDetailResponse struct {
	ID                    string          `json:"id"`
	SlipID                string          `json:"slip_id"`
	LineNumber            int             `json:"line_number"`
	ItemID                string          `json:"item_id"`
	FromWarehouseID       string          `json:"from_warehouse_id,omitempty"`
	FromStorageLocationID string          `json:"from_storage_location_id,omitempty"`
	ToWarehouseID         string          `json:"to_warehouse_id,omitempty"`
	ToStorageLocationID   string          `json:"to_storage_location_id,omitempty"`
	QuantityChange        decimal.Decimal `json:"quantity_change"`
	Status                string          `json:"status"`
	Note                  string          `json:"note,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// SlipWithDetailsResponse vale más sus líneas.
type SlipWithDetailsResponse struct {
	Slip    SlipResponse         `json:"slip"`
	Details []SlipDetailResponse `json:"details"`
}

// SlipListResponse lista paginada de vales.
type SlipListResponse struct {
	Items []SlipResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SlipCountResponse conteo de vales según el filtro aplicado.
type SlipCountResponse struct {
	Type      string `json:"type,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
	Count     int64  `json:"count"`
}

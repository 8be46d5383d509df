package dto

import "time"

// CreateWarehouseRequest datos para crear una bodega.
type CreateWarehouseRequest struct {
	Name string `json:"name"`
}

// UpdateWarehouseRequest campos opcionales a actualizar.
type UpdateWarehouseRequest struct {
	Name *string `json:"name"`
}

// WarehouseResponse representación de una bodega en la API.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateStorageLocationRequest datos para crear una ubicación de almacenaje.
type CreateStorageLocationRequest struct {
	Code        string `json:"code"`
	WarehouseID string `json:"warehouse_id"`
}

// UpdateStorageLocationRequest campos opcionales a actualizar (el código no cambia).
type UpdateStorageLocationRequest struct {
	Status *string `json:"status"`
}

// StorageLocationResponse representación de una ubicación en la API.
type StorageLocationResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	WarehouseID string    `json:"warehouse_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StorageLocationListResponse lista paginada de ubicaciones.
type StorageLocationListResponse struct {
	Items []StorageLocationResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

package dto

import "time"

// CreateItemRequest datos para crear un artículo.
type CreateItemRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// UpdateItemRequest campos opcionales a actualizar.
type UpdateItemRequest struct {
	Name *string `json:"name"`
	Unit *string `json:"unit"`
}

// ItemResponse representación de un artículo en la API.
type ItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

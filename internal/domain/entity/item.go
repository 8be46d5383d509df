package entity

import "time"

// Item representa un artículo de inventario. Solo identidad y unidad de medida;
// las cantidades viven en Stock y en el libro de movimientos.
type Item struct {
	ID        string
	Name      string
	Unit      string // unidad de medida: "pz", "kg", "caja", etc.
	CreatedAt time.Time
	UpdatedAt time.Time
}

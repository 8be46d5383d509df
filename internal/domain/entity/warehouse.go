package entity

import "time"

// Warehouse representa una bodega física o virtual agrupando ubicaciones de almacenaje.
// Las bodegas virtuales (congelado, merma) son bodegas normales pre-aprovisionadas;
// el libro de movimientos no las trata de forma especial.
type Warehouse struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// El código es único.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Code      string // código único
	CreatedAt time.Time
	UpdatedAt time.Time
}

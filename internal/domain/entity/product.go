package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// El SKU es único e inmutable después de la creación; el stock se maneja por bodega
// en StockLevel y nunca se edita directamente sobre el producto.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Category     string
	UnitPrice    decimal.Decimal
	ReorderLevel int64 // umbral de reposición (>= 0)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

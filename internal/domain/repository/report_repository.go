package repository

import "context"

// LowStockItem resultado crudo del repositorio para un producto bajo su umbral de
// reposición (stock agregado de todas las bodegas).
type LowStockItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	ReorderLevel int64
	AvailableQty int64
}

// CategoryTotal total de unidades en stock por categoría de producto.
type CategoryTotal struct {
	Category string
	Quantity int64
}

// StockViewRow fila desnormalizada del stock actual: producto + bodega + cantidad.
type StockViewRow struct {
	ProductSKU    string
	ProductName   string
	WarehouseName string
	WarehouseCode string
	Quantity      int64
}

// EntityCounts conteos para el dashboard.
type EntityCounts struct {
	Products   int64
	Suppliers  int64
	Warehouses int64
	LowStock   int64
}

// ReportRepository consultas de solo lectura sobre ledger + maestros. Sin efectos de
// escritura; leen el estado commiteado y pueden correr en paralelo con el motor.
type ReportRepository interface {
	// LowStock devuelve los productos cuyo stock agregado es menor que su umbral de
	// reposición, ordenados por mayor déficit primero (desempate por SKU).
	LowStock(ctx context.Context) ([]LowStockItem, error)
	// CategorySummary suma el stock por categoría; la categoría vacía se agrupa
	// como "Uncategorized".
	CategorySummary(ctx context.Context) ([]CategoryTotal, error)
	// StockView join de stock_levels con products y warehouses, para display.
	StockView(ctx context.Context) ([]StockViewRow, error)
	// Counts conteos de maestros + productos bajo umbral, para el dashboard.
	Counts(ctx context.Context) (EntityCounts, error)
}

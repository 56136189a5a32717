package dto

// LowStockItemDTO producto por debajo de su umbral de reposición.
type LowStockItemDTO struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	ReorderLevel int64  `json:"reorder_level"`
	AvailableQty int64  `json:"available_qty"`
	Deficit      int64  `json:"deficit"` // ReorderLevel - AvailableQty
}

// CategoryTotalDTO total de stock por categoría, para el gráfico del dashboard.
type CategoryTotalDTO struct {
	Category string `json:"category"`
	Quantity int64  `json:"quantity"`
}

// StockViewRowDTO fila de la vista de stock (producto + bodega + cantidad).
type StockViewRowDTO struct {
	ProductSKU    string `json:"product_sku"`
	ProductName   string `json:"product_name"`
	WarehouseName string `json:"warehouse_name"`
	WarehouseCode string `json:"warehouse_code"`
	Quantity      int64  `json:"quantity"`
}

// DashboardSummaryDTO resumen para el dashboard: conteos + distribución por categoría.
type DashboardSummaryDTO struct {
	Products   int64              `json:"products"`
	Suppliers  int64              `json:"suppliers"`
	Warehouses int64              `json:"warehouses"`
	LowStock   int64              `json:"low_stock"`
	Categories []CategoryTotalDTO `json:"categories"`
}

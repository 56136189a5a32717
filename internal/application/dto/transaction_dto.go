package dto

import "time"

// RecordPurchaseRequest body para POST /api/transactions/purchases.
type RecordPurchaseRequest struct {
	SupplierID  string `json:"supplier_id"`
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

// RecordSaleRequest body para POST /api/transactions/sales.
type RecordSaleRequest struct {
	ProductID    string `json:"product_id"`
	WarehouseID  string `json:"warehouse_id"`
	Quantity     int64  `json:"quantity"`
	CustomerName string `json:"customer_name"`
}

// TransactionResponse una entrada del journal.
type TransactionResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	Quantity     int64     `json:"quantity"`
	Counterparty string    `json:"counterparty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// InsufficientStockResponse error 409 con las cantidades pedida y disponible,
// para que el formulario muestre el mensaje exacto.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// StockQuantityResponse respuesta de GET /api/stock.
type StockQuantityResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

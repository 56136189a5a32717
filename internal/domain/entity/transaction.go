package entity

import "time"

// Tipos de transacción del journal.
const (
	TransactionKindPurchase = "purchase" // entrada: suma stock
	TransactionKindSale     = "sale"     // salida: resta stock
)

// Estados de una transacción. Una venta rechazada por stock insuficiente se persiste
// como intento rechazado (auditoría) y queda fuera de la reconstrucción del stock.
const (
	TransactionStatusRecorded = "recorded"
	TransactionStatusRejected = "rejected"
)

// Transaction es una entrada del journal de compras/ventas. Append-only: nunca se
// actualiza ni se borra después de creada. El stock actual de cada par
// (producto, bodega) es reconstruible sumando compras recorded y restando ventas
// recorded del journal.
type Transaction struct {
	ID           string
	Kind         string // purchase | sale
	ProductID    string
	WarehouseID  string
	Quantity     int64  // siempre positiva; el signo lo da Kind
	Counterparty string // proveedor (compra) o nombre del cliente (venta)
	Status       string // recorded | rejected
	CreatedAt    time.Time
}

package entity

import "time"

// StockLevel representa la cantidad en mano de un producto en una bodega.
// A lo sumo una fila por par (producto, bodega); se crea perezosamente en 0 con la
// primera transacción que referencia el par y nunca se elimina. Quantity jamás puede
// observarse negativa: solo el motor de transacciones la muta, dentro de una tx con
// la fila bloqueada.
type StockLevel struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}

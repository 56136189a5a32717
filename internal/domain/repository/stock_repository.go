package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// StockRepository define el puerto del ledger de stock por (producto, bodega).
// Get devuelve una fila en cero si el par aún no existe; GetForUpdate la crea en
// cero y la bloquea (SELECT FOR UPDATE), de modo que siempre hay una fila real que
// bloquear. Solo tiene sentido dentro de una transacción del TxRunner: ese bloqueo
// serializa todas las aplicaciones de delta sobre la misma llave, incluida la
// primera transacción que toca el par.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.StockLevel, error)
	GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
}

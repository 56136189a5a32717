package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// PairTotal total neto de transacciones recorded para un par (producto, bodega):
// suma de compras menos suma de ventas.
type PairTotal struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
}

// TransactionRepository define el puerto del journal de compras/ventas.
// Append-only: la interfaz no expone update ni delete.
type TransactionRepository interface {
	Create(trx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// List devuelve transacciones más recientes primero. kind vacío = todas.
	List(kind string, limit, offset int) ([]*entity.Transaction, error)
	// SumRecordedByPair reconstruye el neto por par desde el journal
	// (solo filas recorded; los intentos rechazados no cuentan).
	SumRecordedByPair() ([]PairTotal, error)
}

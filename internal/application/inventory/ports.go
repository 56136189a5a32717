package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Commit si fn retorna nil, Rollback si retorna error: la mutación
// del ledger y su entrada en el journal se confirman juntas o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		trxRepo repository.TransactionRepository,
	) error) error
}

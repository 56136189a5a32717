package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// RebuildStockFromJournal recalcula cada fila de stock como la suma de compras
// recorded menos la suma de ventas recorded del journal, en una sola transacción.
// El journal es el log autoritativo y el ledger su proyección: este replay debe
// dejar el ledger idéntico al estado vivo (propiedad verificada en tests).
// Herramienta de recuperación; no forma parte del flujo normal de operación.
// Devuelve el número de pares reescritos.
func (uc *TransactionUseCase) RebuildStockFromJournal(ctx context.Context) (int, error) {
	now := time.Now()
	rebuilt := 0
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, trxRepo repository.TransactionRepository) error {
		totals, err := trxRepo.SumRecordedByPair()
		if err != nil {
			return err
		}
		for _, t := range totals {
			if t.Quantity < 0 {
				// Un neto negativo implica un journal corrupto: nunca se commiteó
				// una venta sin stock suficiente.
				return fmt.Errorf("journal inconsistente: neto %d para producto %s bodega %s",
					t.Quantity, t.ProductID, t.WarehouseID)
			}
			level := &entity.StockLevel{
				ProductID:   t.ProductID,
				WarehouseID: t.WarehouseID,
				Quantity:    t.Quantity,
				UpdatedAt:   now,
			}
			if err := stockRepo.Upsert(level); err != nil {
				return err
			}
			rebuilt++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Info().Int("pairs", rebuilt).Msg("stock reconstruido desde el journal")
	return rebuilt, nil
}

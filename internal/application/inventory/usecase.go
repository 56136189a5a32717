package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TransactionUseCase es el motor de transacciones: único punto de entrada que muta el
// ledger. Registra compras y ventas de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback: el chequeo de stock y el decremento son un
// solo paso atómico dentro de la BD, nunca un read-compare-write en dos llamadas.
type TransactionUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	stockRepo     repository.StockRepository       // lecturas fuera de tx
	trxRepo       repository.TransactionRepository // listados y auditoría de rechazos
}

// NewTransactionUseCase construye el motor.
func NewTransactionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	stockRepo repository.StockRepository,
	trxRepo repository.TransactionRepository,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		stockRepo:     stockRepo,
		trxRepo:       trxRepo,
	}
}

// PurchaseInput entrada para registrar una compra (entrada de stock).
type PurchaseInput struct {
	SupplierID  string
	ProductID   string
	WarehouseID string
	Quantity    int64
}

// SaleInput entrada para registrar una venta (salida de stock).
type SaleInput struct {
	ProductID    string
	WarehouseID  string
	Quantity     int64
	CustomerName string
}

// RecordPurchase valida referencias, suma la cantidad al stock del par y agrega la
// entrada al journal, todo en una transacción. Una compra no puede fallar por nivel
// de stock; sí por cantidad no positiva o referencias inexistentes.
func (uc *TransactionUseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*entity.Transaction, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SupplierID == "" || in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkProductAndWarehouse(in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	trx := &entity.Transaction{
		ID:           uuid.New().String(),
		Kind:         entity.TransactionKindPurchase,
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		Quantity:     in.Quantity,
		Counterparty: supplier.Name,
		Status:       entity.TransactionStatusRecorded,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, trxRepo repository.TransactionRepository) error {
		// Bloquea la fila del par (fila en cero si aún no existe)
		stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		stock.Quantity += in.Quantity
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		return trxRepo.Create(trx)
	})
	if err != nil {
		return nil, err
	}
	return trx, nil
}

// RecordSale valida referencias y resta la cantidad del stock del par dentro de una
// transacción con la fila bloqueada. Si el stock disponible no alcanza, la tx se
// revierte completa (sin mutación del ledger, sin entrada recorded) y se devuelve
// *domain.InsufficientStockError con las cantidades pedida y disponible; el intento
// queda en el journal como rejected, para auditoría.
func (uc *TransactionUseCase) RecordSale(ctx context.Context, in SaleInput) (*entity.Transaction, error) {
	if in.Quantity <= 0 || in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkProductAndWarehouse(in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	trx := &entity.Transaction{
		ID:           uuid.New().String(),
		Kind:         entity.TransactionKindSale,
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		Quantity:     in.Quantity,
		Counterparty: in.CustomerName,
		Status:       entity.TransactionStatusRecorded,
		CreatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, trxRepo repository.TransactionRepository) error {
		stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if stock.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID:   in.ProductID,
				WarehouseID: in.WarehouseID,
				Requested:   in.Quantity,
				Available:   stock.Quantity,
			}
		}
		stock.Quantity -= in.Quantity
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		return trxRepo.Create(trx)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			// Condición esperada del negocio, no una falla del sistema
			log.Debug().
				Str("product_id", in.ProductID).
				Str("warehouse_id", in.WarehouseID).
				Int64("quantity", in.Quantity).
				Msg("venta rechazada por stock insuficiente")
			uc.recordRejectedSale(trx)
		}
		return nil, err
	}
	return trx, nil
}

// recordRejectedSale persiste el intento rechazado fuera de la tx revertida.
// El rechazo no muta cantidades y queda excluido de la reconstrucción del stock.
func (uc *TransactionUseCase) recordRejectedSale(trx *entity.Transaction) {
	rejected := *trx
	rejected.Status = entity.TransactionStatusRejected
	if err := uc.trxRepo.Create(&rejected); err != nil {
		log.Warn().Err(err).Str("transaction_id", rejected.ID).
			Msg("no se pudo persistir el intento rechazado")
	}
}

// GetQuantity devuelve la cantidad en mano del par; 0 si la fila no existe.
func (uc *TransactionUseCase) GetQuantity(_ context.Context, productID, warehouseID string) (int64, error) {
	if productID == "" || warehouseID == "" {
		return 0, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// ListTransactions lista el journal, más recientes primero. kind vacío = todas.
func (uc *TransactionUseCase) ListTransactions(_ context.Context, kind string, limit, offset int) ([]*entity.Transaction, error) {
	if kind != "" && kind != entity.TransactionKindPurchase && kind != entity.TransactionKindSale {
		return nil, domain.ErrInvalidInput
	}
	return uc.trxRepo.List(kind, limit, offset)
}

func (uc *TransactionUseCase) checkProductAndWarehouse(productID, warehouseID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	return nil
}

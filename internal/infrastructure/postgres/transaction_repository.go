package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del journal sobre PostgreSQL (usable con pool o tx).
// Append-only: el adaptador no emite UPDATE ni DELETE sobre transactions.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del journal. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create agrega una transacción al journal.
func (r *TransactionRepo) Create(trx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, kind, product_id, warehouse_id, quantity, counterparty, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		trx.ID, trx.Kind, trx.ProductID, trx.WarehouseID, trx.Quantity,
		trx.Counterparty, trx.Status, trx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `
		SELECT id, kind, product_id, warehouse_id, quantity, counterparty, status, created_at
		FROM transactions WHERE id = $1`
	var t entity.Transaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Kind, &t.ProductID, &t.WarehouseID, &t.Quantity,
		&t.Counterparty, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// List lista transacciones más recientes primero. kind vacío = todas.
func (r *TransactionRepo) List(kind string, limit, offset int) ([]*entity.Transaction, error) {
	var (
		query string
		args  []any
	)
	if kind != "" {
		query = `
			SELECT id, kind, product_id, warehouse_id, quantity, counterparty, status, created_at
			FROM transactions WHERE kind = $1
			ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
		args = []any{kind, limit, offset}
	} else {
		query = `
			SELECT id, kind, product_id, warehouse_id, quantity, counterparty, status, created_at
			FROM transactions
			ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Kind, &t.ProductID, &t.WarehouseID, &t.Quantity,
			&t.Counterparty, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumRecordedByPair neto por par desde el journal: compras recorded menos ventas
// recorded. Los intentos rechazados quedan fuera de la suma.
func (r *TransactionRepo) SumRecordedByPair() ([]repository.PairTotal, error) {
	query := `
		SELECT product_id, warehouse_id,
		       SUM(CASE WHEN kind = 'purchase' THEN quantity ELSE -quantity END) AS net_qty
		FROM transactions
		WHERE status = 'recorded'
		GROUP BY product_id, warehouse_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("sum transactions by pair: %w", err)
	}
	defer rows.Close()
	var totals []repository.PairTotal
	for rows.Next() {
		var t repository.PairTotal
		if err := rows.Scan(&t.ProductID, &t.WarehouseID, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan pair total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

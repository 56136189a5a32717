package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre ledger + maestros. Siempre sobre el pool:
// las vistas no toman bloqueos ni transacciones y leen el estado commiteado.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// LowStock devuelve los productos cuyo stock agregado (todas las bodegas) es menor
// que su umbral de reposición. Ordena por déficit descendente con desempate por SKU
// para que el resultado sea determinista sobre un mismo estado del ledger.
func (r *ReportRepo) LowStock(ctx context.Context) ([]repository.LowStockItem, error) {
	const query = `
		SELECT
			p.id,
			p.sku,
			p.name,
			p.reorder_level,
			COALESCE(SUM(s.quantity), 0) AS available_qty
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		GROUP BY p.id, p.sku, p.name, p.reorder_level
		HAVING COALESCE(SUM(s.quantity), 0) < p.reorder_level
		ORDER BY (p.reorder_level - COALESCE(SUM(s.quantity), 0)) DESC, p.sku ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStock: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var item repository.LowStockItem
		if err := rows.Scan(&item.ProductID, &item.SKU, &item.ProductName,
			&item.ReorderLevel, &item.AvailableQty); err != nil {
			return nil, fmt.Errorf("reports.LowStock scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CategorySummary total de unidades en stock por categoría. La categoría vacía se
// consolida en "Uncategorized". Incluye categorías cuyos productos no tienen stock
// (total 0), igual que el dashboard original.
func (r *ReportRepo) CategorySummary(ctx context.Context) ([]repository.CategoryTotal, error) {
	const query = `
		SELECT
			COALESCE(NULLIF(p.category, ''), 'Uncategorized') AS category,
			COALESCE(SUM(s.quantity), 0)                      AS total_qty
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		GROUP BY 1
		ORDER BY 1 ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.CategorySummary: %w", err)
	}
	defer rows.Close()

	var totals []repository.CategoryTotal
	for rows.Next() {
		var t repository.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Quantity); err != nil {
			return nil, fmt.Errorf("reports.CategorySummary scan: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// StockView join desnormalizado de stock_levels con products y warehouses.
func (r *ReportRepo) StockView(ctx context.Context) ([]repository.StockViewRow, error) {
	const query = `
		SELECT p.sku, p.name, w.name, w.code, s.quantity
		FROM stock_levels s
		JOIN products   p ON p.id = s.product_id
		JOIN warehouses w ON w.id = s.warehouse_id
		ORDER BY p.sku ASC, w.code ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.StockView: %w", err)
	}
	defer rows.Close()

	var view []repository.StockViewRow
	for rows.Next() {
		var row repository.StockViewRow
		if err := rows.Scan(&row.ProductSKU, &row.ProductName,
			&row.WarehouseName, &row.WarehouseCode, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reports.StockView scan: %w", err)
		}
		view = append(view, row)
	}
	return view, rows.Err()
}

// Counts conteos de maestros más productos bajo umbral, para el dashboard.
func (r *ReportRepo) Counts(ctx context.Context) (repository.EntityCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM products)   AS products,
			(SELECT COUNT(*) FROM suppliers)  AS suppliers,
			(SELECT COUNT(*) FROM warehouses) AS warehouses,
			(SELECT COUNT(*) FROM (
				SELECT p.id
				FROM products p
				LEFT JOIN stock_levels s ON s.product_id = p.id
				GROUP BY p.id, p.reorder_level
				HAVING COALESCE(SUM(s.quantity), 0) < p.reorder_level
			) low) AS low_stock`

	var counts repository.EntityCounts
	err := r.pool.QueryRow(ctx, query).Scan(
		&counts.Products, &counts.Suppliers, &counts.Warehouses, &counts.LowStock,
	)
	if err != nil {
		return repository.EntityCounts{}, fmt.Errorf("reports.Counts: %w", err)
	}
	return counts, nil
}

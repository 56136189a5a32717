// Package reports contiene los casos de uso de solo lectura: reporte de bajo stock,
// resumen por categoría, vista de stock y resumen del dashboard. Ningún caso de uso
// de este paquete escribe; leen el estado commiteado del ledger y pueden correr en
// paralelo con el motor de transacciones sin bloquearlo.
package reports

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// LowStockPDFGenerator genera la hoja de reposición imprimible.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, items []dto.LowStockItemDTO) ([]byte, error)
}

// ReportUseCase deriva las vistas agregadas desde ReportRepository.
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  LowStockPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, pdf LowStockPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// LowStockReport devuelve los productos cuyo stock agregado (todas las bodegas) está
// por debajo de su umbral de reposición, ordenados por mayor déficit primero. El orden
// es determinista para un estado fijo del ledger (desempate por SKU en el repositorio).
func (uc *ReportUseCase) LowStockReport(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemDTO{
			ProductID:    it.ProductID,
			SKU:          it.SKU,
			ProductName:  it.ProductName,
			ReorderLevel: it.ReorderLevel,
			AvailableQty: it.AvailableQty,
			Deficit:      it.ReorderLevel - it.AvailableQty,
		})
	}
	return out, nil
}

// LowStockReportPDF genera la hoja de reposición en PDF.
func (uc *ReportUseCase) LowStockReportPDF(ctx context.Context) ([]byte, error) {
	items, err := uc.LowStockReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateLowStockPDF(ctx, items)
}

// CategorySummary devuelve el total de unidades en stock por categoría.
func (uc *ReportUseCase) CategorySummary(ctx context.Context) ([]dto.CategoryTotalDTO, error) {
	totals, err := uc.repo.CategorySummary(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryDTOs(totals), nil
}

// StockView devuelve la vista desnormalizada del stock actual (producto + bodega).
func (uc *ReportUseCase) StockView(ctx context.Context) ([]dto.StockViewRowDTO, error) {
	rows, err := uc.repo.StockView(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockViewRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockViewRowDTO{
			ProductSKU:    r.ProductSKU,
			ProductName:   r.ProductName,
			WarehouseName: r.WarehouseName,
			WarehouseCode: r.WarehouseCode,
			Quantity:      r.Quantity,
		})
	}
	return out, nil
}

// DashboardSummary construye el resumen del dashboard: conteos de maestros, productos
// bajo umbral y distribución de stock por categoría. Las dos consultas van en paralelo.
func (uc *ReportUseCase) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		counts repository.EntityCounts
		err    error
	}
	type categoriesResult struct {
		totals []repository.CategoryTotal
		err    error
	}

	countsCh := make(chan countsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)

	go func() {
		counts, err := uc.repo.Counts(ctx)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		totals, err := uc.repo.CategorySummary(ctx)
		categoriesCh <- categoriesResult{totals, err}
	}()

	counts := <-countsCh
	categories := <-categoriesCh
	if counts.err != nil {
		return nil, counts.err
	}
	if categories.err != nil {
		return nil, categories.err
	}

	return &dto.DashboardSummaryDTO{
		Products:   counts.counts.Products,
		Suppliers:  counts.counts.Suppliers,
		Warehouses: counts.counts.Warehouses,
		LowStock:   counts.counts.LowStock,
		Categories: toCategoryDTOs(categories.totals),
	}, nil
}

func toCategoryDTOs(totals []repository.CategoryTotal) []dto.CategoryTotalDTO {
	out := make([]dto.CategoryTotalDTO, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryTotalDTO{Category: t.Category, Quantity: t.Quantity})
	}
	return out
}

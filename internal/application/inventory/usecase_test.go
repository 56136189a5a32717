package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore emula la BD: los repos "pool" leen el estado commiteado y el TxRunner
// fake reproduce la semántica transaccional real (snapshot + commit/rollback,
// serializado por mutex igual que el SELECT FOR UPDATE serializa por fila).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	products   map[string]*entity.Product
	suppliers  map[string]*entity.Supplier
	warehouses map[string]*entity.Warehouse
	stock      map[string]*entity.StockLevel // clave productID + "|" + warehouseID
	journal    []*entity.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[string]*entity.Product{},
		suppliers:  map[string]*entity.Supplier{},
		warehouses: map[string]*entity.Warehouse{},
		stock:      map[string]*entity.StockLevel{},
	}
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

// fakeProductRepo / fakeSupplierRepo / fakeWarehouseRepo — maestros de solo lectura
// para el motor (el motor nunca los muta).

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type fakeSupplierRepo struct{ s *memStore }

func (r *fakeSupplierRepo) Create(sp *entity.Supplier) error { r.s.suppliers[sp.ID] = sp; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.s.suppliers[id], nil
}
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }

type fakeWarehouseRepo struct{ s *memStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.s.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.s.warehouses[id], nil
}
func (r *fakeWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}
func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }

// fakeStockRepo lee del estado commiteado de la tienda (modo pool) o del snapshot
// de una transacción en curso (modo tx). El commit de fakeTxRunner reemplaza el
// mapa de la tienda, así que en modo pool siempre se resuelve vía r.s.
type fakeStockRepo struct {
	s     *memStore
	stock map[string]*entity.StockLevel // solo en modo tx
	inTx  bool
}

func getStock(m map[string]*entity.StockLevel, productID, warehouseID string) *entity.StockLevel {
	if lvl, ok := m[stockKey(productID, warehouseID)]; ok {
		cp := *lvl
		return &cp
	}
	// Fila en cero si el par aún no existe
	return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}
}

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	if r.inTx {
		return getStock(r.stock, productID, warehouseID), nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return getStock(r.s.stock, productID, warehouseID), nil
}

func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	return getStock(r.stock, productID, warehouseID), nil
}

func (r *fakeStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.stock[stockKey(level.ProductID, level.WarehouseID)] = &cp
	return nil
}

// fakeTrxRepo opera sobre un slice concreto, con el mismo patrón que fakeStockRepo.
type fakeTrxRepo struct {
	s       *memStore
	journal *[]*entity.Transaction
	inTx    bool
}

func (r *fakeTrxRepo) Create(trx *entity.Transaction) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	cp := *trx
	*r.journal = append(*r.journal, &cp)
	return nil
}

func (r *fakeTrxRepo) GetByID(id string) (*entity.Transaction, error) {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, t := range *r.journal {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeTrxRepo) List(kind string, limit, offset int) ([]*entity.Transaction, error) {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var out []*entity.Transaction
	// Más recientes primero
	for i := len(*r.journal) - 1; i >= 0; i-- {
		t := (*r.journal)[i]
		if kind != "" && t.Kind != kind {
			continue
		}
		out = append(out, t)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTrxRepo) SumRecordedByPair() ([]repository.PairTotal, error) {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	sums := map[string]*repository.PairTotal{}
	var order []string
	for _, t := range *r.journal {
		if t.Status != entity.TransactionStatusRecorded {
			continue
		}
		k := stockKey(t.ProductID, t.WarehouseID)
		pt, ok := sums[k]
		if !ok {
			pt = &repository.PairTotal{ProductID: t.ProductID, WarehouseID: t.WarehouseID}
			sums[k] = pt
			order = append(order, k)
		}
		if t.Kind == entity.TransactionKindPurchase {
			pt.Quantity += t.Quantity
		} else {
			pt.Quantity -= t.Quantity
		}
	}
	out := make([]repository.PairTotal, 0, len(order))
	for _, k := range order {
		out = append(out, *sums[k])
	}
	return out, nil
}

// fakeTxRunner clona el estado, ejecuta fn sobre el clon y solo si fn retorna nil
// lo promueve a estado commiteado. El mutex serializa las transacciones completas,
// que es el comportamiento observable del bloqueo de fila para un solo par.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.TransactionRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stockClone := make(map[string]*entity.StockLevel, len(r.s.stock))
	for k, v := range r.s.stock {
		cp := *v
		stockClone[k] = &cp
	}
	journalClone := make([]*entity.Transaction, len(r.s.journal))
	copy(journalClone, r.s.journal)

	stockRepo := &fakeStockRepo{s: r.s, stock: stockClone, inTx: true}
	trxRepo := &fakeTrxRepo{s: r.s, journal: &journalClone, inTx: true}

	if err := fn(stockRepo, trxRepo); err != nil {
		return err // rollback: el estado commiteado queda intacto
	}
	r.s.stock = stockClone
	r.s.journal = journalClone
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store       *memStore
	uc          *inventory.TransactionUseCase
	productID   string
	warehouseID string
	supplierID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newMemStore()
	productID := uuid.New().String()
	warehouseID := uuid.New().String()
	supplierID := uuid.New().String()
	now := time.Now()
	s.products[productID] = &entity.Product{
		ID: productID, SKU: "SKU-001", Name: "Tornillo 3mm",
		Category: "Ferretería", ReorderLevel: 10, CreatedAt: now, UpdatedAt: now,
	}
	s.warehouses[warehouseID] = &entity.Warehouse{
		ID: warehouseID, Name: "Bodega Central", Location: "Bogotá", Code: "BOD-01", CreatedAt: now,
	}
	s.suppliers[supplierID] = &entity.Supplier{
		ID: supplierID, Name: "Aceros del Norte", Email: "ventas@acerosdelnorte.co", CreatedAt: now,
	}

	uc := inventory.NewTransactionUseCase(
		&fakeTxRunner{s: s},
		&fakeProductRepo{s: s},
		&fakeWarehouseRepo{s: s},
		&fakeSupplierRepo{s: s},
		&fakeStockRepo{s: s},
		&fakeTrxRepo{s: s, journal: &s.journal},
	)
	return &fixture{store: s, uc: uc, productID: productID, warehouseID: warehouseID, supplierID: supplierID}
}

func (f *fixture) quantity(t *testing.T) int64 {
	t.Helper()
	qty, err := f.uc.GetQuantity(context.Background(), f.productID, f.warehouseID)
	require.NoError(t, err)
	return qty
}

func (f *fixture) purchase(t *testing.T, qty int64) *entity.Transaction {
	t.Helper()
	trx, err := f.uc.RecordPurchase(context.Background(), inventory.PurchaseInput{
		SupplierID: f.supplierID, ProductID: f.productID, WarehouseID: f.warehouseID, Quantity: qty,
	})
	require.NoError(t, err)
	return trx
}

func (f *fixture) sale(qty int64) (*entity.Transaction, error) {
	return f.uc.RecordSale(context.Background(), inventory.SaleInput{
		ProductID: f.productID, WarehouseID: f.warehouseID, Quantity: qty, CustomerName: "Cliente Demo",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo compra/venta
// ──────────────────────────────────────────────────────────────────────────────

// Escenario completo: compra 50, venta 20, venta 35 rechazada, venta 25.
func TestTransacciones_FlujoCompraVenta(t *testing.T) {
	f := newFixture(t)

	trx := f.purchase(t, 50)
	assert.Equal(t, entity.TransactionKindPurchase, trx.Kind)
	assert.Equal(t, entity.TransactionStatusRecorded, trx.Status)
	assert.Equal(t, "Aceros del Norte", trx.Counterparty, "la compra guarda el nombre del proveedor")
	assert.Equal(t, int64(50), f.quantity(t))

	_, err := f.sale(20)
	require.NoError(t, err)
	assert.Equal(t, int64(30), f.quantity(t))

	// Venta por más de lo disponible: rechazada, con las cantidades en el error
	_, err = f.sale(35)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(35), insufficient.Requested)
	assert.Equal(t, int64(30), insufficient.Available)
	assert.Equal(t, int64(30), f.quantity(t), "el rechazo no muta el stock")

	// La venta siguiente por lo disponible sí pasa
	_, err = f.sale(25)
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.quantity(t))
}

func TestRecordSale_RechazoQuedaEnJournalComoRejected(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 5)

	_, err := f.sale(8)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := f.uc.ListTransactions(context.Background(), entity.TransactionKindSale, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransactionStatusRejected, list[0].Status)
	assert.Equal(t, int64(8), list[0].Quantity)
}

func TestRecordSale_StockExacto(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 7)

	// Vender exactamente lo disponible deja el par en cero, no es rechazo
	_, err := f.sale(7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.quantity(t))
}

func TestRecordSale_SinStockPrevio(t *testing.T) {
	f := newFixture(t)

	// El par no existe todavía: disponible 0
	_, err := f.sale(1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.PurchaseInput
		want error
	}{
		{"cantidad cero", inventory.PurchaseInput{SupplierID: f.supplierID, ProductID: f.productID, WarehouseID: f.warehouseID, Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", inventory.PurchaseInput{SupplierID: f.supplierID, ProductID: f.productID, WarehouseID: f.warehouseID, Quantity: -3}, domain.ErrInvalidInput},
		{"sin proveedor", inventory.PurchaseInput{ProductID: f.productID, WarehouseID: f.warehouseID, Quantity: 1}, domain.ErrInvalidInput},
		{"proveedor inexistente", inventory.PurchaseInput{SupplierID: uuid.New().String(), ProductID: f.productID, WarehouseID: f.warehouseID, Quantity: 1}, domain.ErrNotFound},
		{"producto inexistente", inventory.PurchaseInput{SupplierID: f.supplierID, ProductID: uuid.New().String(), WarehouseID: f.warehouseID, Quantity: 1}, domain.ErrNotFound},
		{"bodega inexistente", inventory.PurchaseInput{SupplierID: f.supplierID, ProductID: f.productID, WarehouseID: uuid.New().String(), Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RecordPurchase(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.store.journal, "una entrada inválida no toca el journal")
}

func TestRecordSale_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.RecordSale(ctx, inventory.SaleInput{
		ProductID: f.productID, WarehouseID: f.warehouseID, Quantity: 3, CustomerName: "",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin cliente es inválida")

	_, err = f.uc.RecordSale(ctx, inventory.SaleInput{
		ProductID: uuid.New().String(), WarehouseID: f.warehouseID, Quantity: 3, CustomerName: "Cliente Demo",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetQuantity_ParInexistenteEsCero(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, int64(0), f.quantity(t))

	_, err := f.uc.GetQuantity(context.Background(), "", f.warehouseID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListTransactions_KindInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ListTransactions(context.Background(), "donation", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: ventas simultáneas sobre el mismo par
// ──────────────────────────────────────────────────────────────────────────────

// Dos ventas concurrentes por el total disponible: exactamente una debe pasar y
// la otra debe rechazarse; el stock nunca queda negativo.
func TestRecordSale_VentasConcurrentesUnaSolaGana(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 10)

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.sale(10)
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una venta debe commitear")
	assert.Equal(t, 1, rejected, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, int64(0), f.quantity(t))
}

func TestRecordSale_RafagaConcurrenteNuncaNegativo(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 25)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.sale(4) // 10 intentos de 4 contra 25: máximo 6 pueden pasar
		}()
	}
	wg.Wait()

	qty := f.quantity(t)
	assert.GreaterOrEqual(t, qty, int64(0), "el stock nunca puede ser negativo")
	assert.Equal(t, int64(0), (25-qty)%4, "cada venta commiteada descuenta exactamente 4")
	assert.Equal(t, int64(1), qty, "con 25 unidades solo 6 ventas de 4 pueden commitear")
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo por fila: primer toque concurrente de un par nuevo
//
// rowLockStore emula la semántica real del adaptador, no la serialización global
// del fakeTxRunner: un mutex por llave en lugar de uno por tienda. GetForUpdate
// crea la fila en cero si no existe y recién entonces toma su lock (igual que el
// INSERT ... ON CONFLICT DO NOTHING + re-SELECT FOR UPDATE del adaptador); la
// lectura ocurre después de adquirir el lock, así que ve el valor commiteado por
// la tx que lo tenía antes. Sin la creación perezosa previa al lock, dos primeras
// compras concurrentes leerían ambas cero y la última pisaría a la primera.
// ──────────────────────────────────────────────────────────────────────────────

type rowLockStore struct {
	mu      sync.Mutex // protege los mapas, nunca se retiene durante una tx
	locks   map[string]*sync.Mutex
	stock   map[string]*entity.StockLevel
	journal []*entity.Transaction
}

func newRowLockStore() *rowLockStore {
	return &rowLockStore{
		locks: map[string]*sync.Mutex{},
		stock: map[string]*entity.StockLevel{},
	}
}

// lockRow crea la fila en cero y su lock si no existen, y devuelve el lock.
func (s *rowLockStore) lockRow(productID, warehouseID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := stockKey(productID, warehouseID)
	l, ok := s.locks[k]
	if !ok {
		l = &sync.Mutex{}
		s.locks[k] = l
		s.stock[k] = &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}
	}
	return l
}

func (s *rowLockStore) committed(productID, warehouseID string) *entity.StockLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getStock(s.stock, productID, warehouseID)
}

// lockingTx una transacción en curso: locks de fila retenidos y escrituras en buffer.
type lockingTx struct {
	s       *rowLockStore
	held    map[string]*sync.Mutex
	writes  map[string]*entity.StockLevel
	journal []*entity.Transaction
}

type lockingStockRepo struct{ tx *lockingTx }

func (r lockingStockRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	return r.tx.s.committed(productID, warehouseID), nil
}

func (r lockingStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	k := stockKey(productID, warehouseID)
	if lvl, ok := r.tx.writes[k]; ok {
		cp := *lvl
		return &cp, nil
	}
	if _, ok := r.tx.held[k]; !ok {
		l := r.tx.s.lockRow(productID, warehouseID)
		l.Lock() // espera al commit de cualquier otra tx que tenga la fila
		r.tx.held[k] = l
	}
	return r.tx.s.committed(productID, warehouseID), nil
}

func (r lockingStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.tx.writes[stockKey(level.ProductID, level.WarehouseID)] = &cp
	return nil
}

type lockingTrxRepo struct{ tx *lockingTx }

func (r lockingTrxRepo) Create(trx *entity.Transaction) error {
	cp := *trx
	r.tx.journal = append(r.tx.journal, &cp)
	return nil
}
func (r lockingTrxRepo) GetByID(string) (*entity.Transaction, error) { return nil, domain.ErrNotFound }
func (r lockingTrxRepo) List(string, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (r lockingTrxRepo) SumRecordedByPair() ([]repository.PairTotal, error) {
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	sums := map[string]*repository.PairTotal{}
	var order []string
	for _, t := range r.tx.s.journal {
		if t.Status != entity.TransactionStatusRecorded {
			continue
		}
		k := stockKey(t.ProductID, t.WarehouseID)
		pt, ok := sums[k]
		if !ok {
			pt = &repository.PairTotal{ProductID: t.ProductID, WarehouseID: t.WarehouseID}
			sums[k] = pt
			order = append(order, k)
		}
		if t.Kind == entity.TransactionKindPurchase {
			pt.Quantity += t.Quantity
		} else {
			pt.Quantity -= t.Quantity
		}
	}
	out := make([]repository.PairTotal, 0, len(order))
	for _, k := range order {
		out = append(out, *sums[k])
	}
	return out, nil
}

type lockingTxRunner struct{ s *rowLockStore }

func (r lockingTxRunner) Run(_ context.Context, fn func(repository.StockRepository, repository.TransactionRepository) error) error {
	tx := &lockingTx{s: r.s, held: map[string]*sync.Mutex{}, writes: map[string]*entity.StockLevel{}}
	err := fn(lockingStockRepo{tx: tx}, lockingTrxRepo{tx: tx})
	if err == nil {
		r.s.mu.Lock()
		for k, lvl := range tx.writes {
			r.s.stock[k] = lvl
		}
		r.s.journal = append(r.s.journal, tx.journal...)
		r.s.mu.Unlock()
	}
	for _, l := range tx.held {
		l.Unlock()
	}
	return err
}

// poolTrxRepo lecturas del journal commiteado (modo pool) para el motor.
type poolTrxRepo struct{ s *rowLockStore }

func (r poolTrxRepo) Create(trx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *trx
	r.s.journal = append(r.s.journal, &cp)
	return nil
}
func (r poolTrxRepo) GetByID(string) (*entity.Transaction, error) { return nil, domain.ErrNotFound }
func (r poolTrxRepo) List(kind string, limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Transaction
	for i := len(r.s.journal) - 1; i >= 0; i-- {
		if kind == "" || r.s.journal[i].Kind == kind {
			out = append(out, r.s.journal[i])
		}
	}
	return out, nil
}
func (r poolTrxRepo) SumRecordedByPair() ([]repository.PairTotal, error) { return nil, nil }

type poolStockRepo struct{ s *rowLockStore }

func (r poolStockRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	return r.s.committed(productID, warehouseID), nil
}
func (r poolStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	return r.s.committed(productID, warehouseID), nil
}
func (r poolStockRepo) Upsert(*entity.StockLevel) error { return nil }

// Varias primeras compras concurrentes sobre un par sin fila: ninguna puede perderse.
// Con la fila creada en cero antes de tomar el lock, cada tx lee el valor commiteado
// por la anterior y el total final es la suma exacta de todas las compras.
func TestRecordPurchase_PrimerToqueConcurrenteNoPierdeCompras(t *testing.T) {
	ms := newMemStore()
	productID := uuid.New().String()
	warehouseID := uuid.New().String()
	supplierID := uuid.New().String()
	ms.products[productID] = &entity.Product{ID: productID, SKU: "SKU-001", Name: "Tornillo"}
	ms.warehouses[warehouseID] = &entity.Warehouse{ID: warehouseID, Name: "Central", Code: "BOD-01"}
	ms.suppliers[supplierID] = &entity.Supplier{ID: supplierID, Name: "Aceros del Norte"}

	s := newRowLockStore()
	uc := inventory.NewTransactionUseCase(
		lockingTxRunner{s: s},
		&fakeProductRepo{s: ms},
		&fakeWarehouseRepo{s: ms},
		&fakeSupplierRepo{s: ms},
		poolStockRepo{s: s},
		poolTrxRepo{s: s},
	)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordPurchase(context.Background(), inventory.PurchaseInput{
				SupplierID: supplierID, ProductID: productID, WarehouseID: warehouseID, Quantity: 10,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lvl := s.committed(productID, warehouseID)
	assert.Equal(t, int64(workers*10), lvl.Quantity,
		"todas las primeras compras concurrentes deben quedar aplicadas")

	// El ledger y el replay del journal coinciden también para el primer toque
	pairs, err := uc.RebuildStockFromJournal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pairs)
	assert.Equal(t, int64(workers*10), s.committed(productID, warehouseID).Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconstrucción desde el journal
// ──────────────────────────────────────────────────────────────────────────────

// El ledger es una proyección del journal: borrarlo y reconstruirlo debe dejar
// exactamente las mismas cantidades, ignorando los intentos rechazados.
func TestRebuildStockFromJournal_ReproduceElEstadoVivo(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 50)
	_, err := f.sale(20)
	require.NoError(t, err)
	_, err = f.sale(35) // rechazada: queda en el journal pero no cuenta
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = f.sale(25)
	require.NoError(t, err)

	want := f.quantity(t)
	require.Equal(t, int64(5), want)

	// Simular pérdida del ledger
	f.store.mu.Lock()
	f.store.stock = map[string]*entity.StockLevel{}
	f.store.mu.Unlock()

	pairs, err := f.uc.RebuildStockFromJournal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pairs)

	f.store.mu.Lock()
	rebuilt := f.store.stock[stockKey(f.productID, f.warehouseID)]
	f.store.mu.Unlock()
	require.NotNil(t, rebuilt)
	assert.Equal(t, want, rebuilt.Quantity, "replay del journal == estado vivo")
}

func TestRebuildStockFromJournal_JournalCorrupto(t *testing.T) {
	f := newFixture(t)

	// Una venta recorded sin compra previa es imposible por construcción; si
	// aparece, el rebuild debe fallar en lugar de escribir un neto negativo.
	f.store.journal = append(f.store.journal, &entity.Transaction{
		ID: uuid.New().String(), Kind: entity.TransactionKindSale,
		ProductID: f.productID, WarehouseID: f.warehouseID,
		Quantity: 3, Counterparty: "Cliente Demo",
		Status: entity.TransactionStatusRecorded, CreatedAt: time.Now(),
	})

	_, err := f.uc.RebuildStockFromJournal(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal inconsistente")
}

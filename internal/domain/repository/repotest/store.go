// Package repotest implementa los puertos de repository en memoria para tests de casos de uso y handlers.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu         sync.Mutex
	Users      map[string]*entity.User
	Categories map[string]*entity.Category
	Brands     map[string]*entity.Brand
	Products   map[string]*entity.Product
	Serials    map[string]*entity.SerialItem
	Warranties map[string]*entity.Warranty
	Rates      map[string]*entity.ExchangeRate // clave: YYYY-MM-DD
	Sales      map[string]*entity.Sale
	SaleItems  map[string][]*entity.SaleItem
	Notes      map[string]string
	Columns    map[string]bool // "tabla.columna"
	// Err, si no es nil, lo devuelven todas las operaciones.
	Err error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Users:      map[string]*entity.User{},
		Categories: map[string]*entity.Category{},
		Brands:     map[string]*entity.Brand{},
		Products:   map[string]*entity.Product{},
		Serials:    map[string]*entity.SerialItem{},
		Warranties: map[string]*entity.Warranty{},
		Rates:      map[string]*entity.ExchangeRate{},
		Sales:      map[string]*entity.Sale{},
		SaleItems:  map[string][]*entity.SaleItem{},
		Notes:      map[string]string{},
		Columns:    map[string]bool{},
	}
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (s *Store) UserRepo() *UserRepo { return &UserRepo{s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, x := range r.s.Users {
		if x.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.Users[u.ID] = clone(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if u, ok := r.s.Users[id]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.Users {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Users[u.ID] = clone(u)
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.Users))
	for _, u := range r.s.Users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return len(r.s.Users), nil
}

// ── Categories ───────────────────────────────────────────────────────────────

// CategoryRepo implementación en memoria de repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (s *Store) CategoryRepo() *CategoryRepo { return &CategoryRepo{s} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Categories {
		if x.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.Categories[c.ID] = clone(c)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.Categories[id]; ok {
		return clone(c), nil
	}
	return nil, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, c := range r.s.Categories {
		if c.Name == name {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Categories[c.ID] = clone(c)
	return nil
}

func (r *CategoryRepo) List(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*entity.Category{}
	for _, c := range r.s.Categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) CountProducts(_ context.Context, categoryID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.Products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Categories, id)
	return nil
}

// ── Brands ───────────────────────────────────────────────────────────────────

// BrandRepo implementación en memoria de repository.BrandRepository.
type BrandRepo struct{ s *Store }

var _ repository.BrandRepository = (*BrandRepo)(nil)

func (s *Store) BrandRepo() *BrandRepo { return &BrandRepo{s} }

func (r *BrandRepo) Create(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Brands {
		if x.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.Brands[b.ID] = clone(b)
	return nil
}

func (r *BrandRepo) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.Brands[id]; ok {
		return clone(b), nil
	}
	return nil, nil
}

func (r *BrandRepo) GetByName(_ context.Context, name string) (*entity.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.Brands {
		if b.Name == name {
			return clone(b), nil
		}
	}
	return nil, nil
}

func (r *BrandRepo) Update(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Brands[b.ID] = clone(b)
	return nil
}

func (r *BrandRepo) List(_ context.Context, activeOnly bool) ([]*entity.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Brand{}
	for _, b := range r.s.Brands {
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, clone(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *BrandRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Brands, id)
	return nil
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (s *Store) ProductRepo() *ProductRepo { return &ProductRepo{s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Products {
		if x.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.Products[p.ID] = clone(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if p, ok := r.s.Products[id]; ok {
		return clone(p), nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.Products {
		if p.SKU == sku {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Products[p.ID] = clone(p)
	return nil
}

func (r *ProductRepo) Deactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.Products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, 0, r.s.Err
	}
	var all []*entity.Product
	q := strings.ToLower(f.Search)
	for _, p := range r.s.Products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.IsSerialized != nil && p.IsSerialized != *f.IsSerialized {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.SKU+" "+p.Model), q) {
			continue
		}
		all = append(all, clone(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if f.Offset < len(all) {
		all = all[f.Offset:]
	} else {
		all = nil
	}
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range r.s.Products {
		if p.IsActive && !p.IsSerialized && p.Quantity <= p.LowStockThreshold {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (r *ProductRepo) DecrementStock(_ context.Context, productID string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[productID]
	if !ok || p.Quantity < qty {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	return nil
}

func (r *ProductRepo) IncrementStock(_ context.Context, productID string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity += qty
	return nil
}

// ── Serial items ─────────────────────────────────────────────────────────────

// SerialItemRepo implementación en memoria de repository.SerialItemRepository.
type SerialItemRepo struct{ s *Store }

var _ repository.SerialItemRepository = (*SerialItemRepo)(nil)

func (s *Store) SerialItemRepo() *SerialItemRepo { return &SerialItemRepo{s} }

func matches(u *entity.SerialItem, identifier string) bool {
	return (u.IMEI != nil && *u.IMEI == identifier) || (u.SerialNumber != nil && *u.SerialNumber == identifier)
}

func (r *SerialItemRepo) Create(_ context.Context, item *entity.SerialItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Serials {
		if (item.IMEI != nil && matches(u, *item.IMEI)) || (item.SerialNumber != nil && matches(u, *item.SerialNumber)) {
			return domain.ErrDuplicate
		}
	}
	r.s.Serials[item.ID] = clone(item)
	return nil
}

func (r *SerialItemRepo) GetByID(_ context.Context, id string) (*entity.SerialItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.Serials[id]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (r *SerialItemRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.SerialItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Serials {
		if matches(u, identifier) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *SerialItemRepo) List(_ context.Context, f repository.SerialItemFilter) ([]*entity.SerialItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.SerialItem{}
	for _, u := range r.s.Serials {
		if f.ProductID != "" && u.ProductID != f.ProductID {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SerialItemRepo) MarkSold(_ context.Context, id, saleID string, soldAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Serials[id]
	if !ok || u.Status != entity.SerialInStock {
		return domain.ErrUnitUnavailable
	}
	u.Status = entity.SerialSold
	u.SaleID = &saleID
	u.SoldAt = &soldAt
	return nil
}

func (r *SerialItemRepo) MarkInStock(_ context.Context, id, saleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Serials[id]
	if !ok || u.SaleID == nil || *u.SaleID != saleID {
		return domain.ErrUnitUnavailable
	}
	u.Status = entity.SerialInStock
	u.SaleID = nil
	u.SoldAt = nil
	return nil
}

func (r *SerialItemRepo) Update(_ context.Context, item *entity.SerialItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Serials[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status, u.CostPrice, u.Notes, u.UpdatedAt = item.Status, item.CostPrice, item.Notes, item.UpdatedAt
	return nil
}

// ── Warranties ───────────────────────────────────────────────────────────────

// WarrantyRepo implementación en memoria de repository.WarrantyRepository.
type WarrantyRepo struct{ s *Store }

var _ repository.WarrantyRepository = (*WarrantyRepo)(nil)

func (s *Store) WarrantyRepo() *WarrantyRepo { return &WarrantyRepo{s} }

func (r *WarrantyRepo) Create(_ context.Context, w *entity.Warranty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Warranties[w.ID] = clone(w)
	return nil
}

func (r *WarrantyRepo) FindByIdentifier(_ context.Context, identifier string) (*repository.WarrantyLookup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var best *repository.WarrantyLookup
	for _, w := range r.s.Warranties {
		u, ok := r.s.Serials[w.SerialItemID]
		if !ok || !matches(u, identifier) {
			continue
		}
		if best != nil && !w.StartDate.After(best.Warranty.StartDate) {
			continue
		}
		name := ""
		if p, ok := r.s.Products[u.ProductID]; ok {
			name = p.Name
		}
		best = &repository.WarrantyLookup{Warranty: *w, Unit: *u, ProductName: name}
	}
	return best, nil
}

func (r *WarrantyRepo) ListBySale(_ context.Context, saleID string) ([]*entity.Warranty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Warranty{}
	for _, w := range r.s.Warranties {
		if w.SaleID == saleID {
			out = append(out, clone(w))
		}
	}
	return out, nil
}

func (r *WarrantyRepo) ExpireBefore(_ context.Context, day time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, w := range r.s.Warranties {
		if w.Status == entity.WarrantyActive && w.EndDate.Before(day) {
			w.Status = entity.WarrantyExpired
			n++
		}
	}
	return n, nil
}

func (r *WarrantyRepo) VoidBySale(_ context.Context, serialItemID, saleID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, w := range r.s.Warranties {
		if w.SerialItemID == serialItemID && w.SaleID == saleID {
			w.Status = entity.WarrantyVoided
			n++
		}
	}
	return n, nil
}

// ── Exchange rates ───────────────────────────────────────────────────────────

// ExchangeRateRepo implementación en memoria de repository.ExchangeRateRepository.
type ExchangeRateRepo struct{ s *Store }

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

func (s *Store) ExchangeRateRepo() *ExchangeRateRepo { return &ExchangeRateRepo{s} }

func (r *ExchangeRateRepo) Upsert(_ context.Context, rate *entity.ExchangeRate) (*entity.ExchangeRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := dayKey(rate.RateDate)
	if cur, ok := r.s.Rates[key]; ok {
		cur.USDToKHR = rate.USDToKHR
		cur.SetBy = rate.SetBy
		cur.UpdatedAt = rate.UpdatedAt
		return clone(cur), nil
	}
	r.s.Rates[key] = clone(rate)
	return clone(rate), nil
}

func (r *ExchangeRateRepo) GetByDate(_ context.Context, day time.Time) (*entity.ExchangeRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.Rates[dayKey(day)]; ok {
		return clone(cur), nil
	}
	return nil, nil
}

func (r *ExchangeRateRepo) sorted() []*entity.ExchangeRate {
	out := make([]*entity.ExchangeRate, 0, len(r.s.Rates))
	for _, x := range r.s.Rates {
		out = append(out, clone(x))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RateDate.After(out[j].RateDate) })
	return out
}

func (r *ExchangeRateRepo) ListRecent(_ context.Context, limit int) ([]*entity.ExchangeRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ExchangeRateRepo) History(_ context.Context, since time.Time) ([]*repository.ExchangeRateHistoryRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*repository.ExchangeRateHistoryRow{}
	for _, x := range r.sorted() {
		if x.RateDate.Before(since) {
			continue
		}
		name := ""
		if u, ok := r.s.Users[x.SetBy]; ok {
			name = u.FullName
		}
		out = append(out, &repository.ExchangeRateHistoryRow{Rate: *x, SetByName: name})
	}
	return out, nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

// SaleRepo implementación en memoria de repository.SaleRepository.
type SaleRepo struct{ s *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (s *Store) SaleRepo() *SaleRepo { return &SaleRepo{s} }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale, items []*entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Sales {
		if x.InvoiceNumber == sale.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.Sales[sale.ID] = clone(sale)
	for _, it := range items {
		r.s.SaleItems[sale.ID] = append(r.s.SaleItems[sale.ID], clone(it))
	}
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.Sales[id]; ok {
		return clone(x), nil
	}
	return nil, nil
}

func (r *SaleRepo) ListItems(_ context.Context, saleID string) ([]*repository.SaleItemRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*repository.SaleItemRow{}
	for _, it := range r.s.SaleItems[saleID] {
		row := &repository.SaleItemRow{Item: *it}
		if p, ok := r.s.Products[it.ProductID]; ok {
			row.ProductName, row.SKU = p.Name, p.SKU
		}
		if it.SerialItemID != nil {
			if u, ok := r.s.Serials[*it.SerialItemID]; ok {
				row.IMEI, row.SerialNumber = u.IMEI, u.SerialNumber
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*repository.SaleListRow, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*repository.SaleListRow{}
	for _, x := range r.s.Sales {
		if f.CashierID != "" && x.CashierID != f.CashierID {
			continue
		}
		if f.PaymentMethod != "" && x.PaymentMethod != f.PaymentMethod {
			continue
		}
		if f.From != nil && x.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && x.CreatedAt.After(*f.To) {
			continue
		}
		name := ""
		if u, ok := r.s.Users[x.CashierID]; ok {
			name = u.FullName
		}
		out = append(out, &repository.SaleListRow{Sale: *x, CashierName: name, ItemCount: len(r.s.SaleItems[x.ID])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sale.CreatedAt.After(out[j].Sale.CreatedAt) })
	return out, len(out), nil
}

func (r *SaleRepo) NextInvoiceSequence(_ context.Context, day time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, x := range r.s.Sales {
		if dayKey(x.CreatedAt) == dayKey(day) {
			n++
		}
	}
	return n + 1, nil
}

func (r *SaleRepo) SetInternalNotes(_ context.Context, saleID, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Notes[saleID] = notes
	return nil
}

func (r *SaleRepo) MarkVoided(_ context.Context, saleID, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.Sales[saleID]
	if !ok || x.Status != entity.SaleCompleted {
		return domain.ErrSaleVoided
	}
	x.Status = entity.SaleVoided
	x.Notes = notes
	return nil
}

// ── Reports ──────────────────────────────────────────────────────────────────

// ReportRepo implementación en memoria de repository.ReportRepository.
type ReportRepo struct{ s *Store }

var _ repository.ReportRepository = (*ReportRepo)(nil)

func (s *Store) ReportRepo() *ReportRepo { return &ReportRepo{s} }

func (r *ReportRepo) inRange(x *entity.Sale, from, to time.Time) bool {
	return x.Status == entity.SaleCompleted && !x.CreatedAt.Before(from) && !x.CreatedAt.After(to)
}

func (r *ReportRepo) Performance(_ context.Context, from, to time.Time) ([]*repository.CashierPerformance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	by := map[string]*repository.CashierPerformance{}
	for _, x := range r.s.Sales {
		if !r.inRange(x, from, to) {
			continue
		}
		row, ok := by[x.CashierID]
		if !ok {
			row = &repository.CashierPerformance{CashierID: x.CashierID, TotalRevenue: decimal.Zero}
			if u, ok := r.s.Users[x.CashierID]; ok {
				row.CashierName = u.FullName
			}
			by[x.CashierID] = row
		}
		row.TotalSales++
		row.TotalRevenue = row.TotalRevenue.Add(x.TotalUSD)
	}
	out := make([]*repository.CashierPerformance, 0, len(by))
	for _, row := range by {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue) })
	return out, nil
}

func (r *ReportRepo) SalesByPaymentMethod(_ context.Context, from, to time.Time) ([]*repository.PaymentMethodTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	by := map[string]*repository.PaymentMethodTotal{}
	for _, x := range r.s.Sales {
		if !r.inRange(x, from, to) {
			continue
		}
		row, ok := by[x.PaymentMethod]
		if !ok {
			row = &repository.PaymentMethodTotal{PaymentMethod: x.PaymentMethod, TotalUSD: decimal.Zero}
			by[x.PaymentMethod] = row
		}
		row.Count++
		row.TotalUSD = row.TotalUSD.Add(x.TotalUSD)
	}
	out := make([]*repository.PaymentMethodTotal, 0, len(by))
	for _, row := range by {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentMethod < out[j].PaymentMethod })
	return out, nil
}

func (r *ReportRepo) TopSelling(_ context.Context, from, to time.Time, limit int) ([]*repository.TopProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	by := map[string]*repository.TopProduct{}
	for id, x := range r.s.Sales {
		if !r.inRange(x, from, to) {
			continue
		}
		for _, it := range r.s.SaleItems[id] {
			row, ok := by[it.ProductID]
			if !ok {
				row = &repository.TopProduct{ProductID: it.ProductID, Revenue: decimal.Zero}
				if p, ok := r.s.Products[it.ProductID]; ok {
					row.Name, row.SKU = p.Name, p.SKU
				}
				by[it.ProductID] = row
			}
			row.Quantity += it.Quantity
			row.Revenue = row.Revenue.Add(it.Total)
		}
	}
	out := make([]*repository.TopProduct, 0, len(by))
	for _, row := range by {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReportRepo) Profit(_ context.Context, from, to time.Time) (*repository.ProfitTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := &repository.ProfitTotals{Revenue: decimal.Zero, Cost: decimal.Zero}
	for id, x := range r.s.Sales {
		if !r.inRange(x, from, to) {
			continue
		}
		p.SalesCount++
		p.Revenue = p.Revenue.Add(x.TotalUSD)
		for _, it := range r.s.SaleItems[id] {
			p.Cost = p.Cost.Add(it.CostPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return p, nil
}

// ── Schema ───────────────────────────────────────────────────────────────────

// SchemaRepo implementación en memoria de repository.SchemaRepository.
type SchemaRepo struct{ s *Store }

var _ repository.SchemaRepository = (*SchemaRepo)(nil)

func (s *Store) SchemaRepo() *SchemaRepo { return &SchemaRepo{s} }

func (r *SchemaRepo) EnsureColumn(_ context.Context, table, column, _ string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := table + "." + column
	if r.s.Columns[key] {
		return false, nil
	}
	r.s.Columns[key] = true
	return true, nil
}

// ── Transacciones ────────────────────────────────────────────────────────────

// TxRunner ejecuta fn con los repositorios en memoria. No hay rollback.
type TxRunner struct{ s *Store }

func (s *Store) TxRunner() *TxRunner { return &TxRunner{s} }

func (t *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	serialRepo repository.SerialItemRepository,
	saleRepo repository.SaleRepository,
	warrantyRepo repository.WarrantyRepository,
) error) error {
	return fn(t.s.ProductRepo(), t.s.SerialItemRepo(), t.s.SaleRepo(), t.s.WarrantyRepo())
}

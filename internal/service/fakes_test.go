package service

import (
	"errors"
	"sort"
	"time"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the persistence contracts closely
// enough to drive the services without a database.

func entryKey(unitCode, productCode string) string {
	return unitCode + "|" + productCode
}

type fakeUnitRepo struct {
	units []model.Unit
}

func (f *fakeUnitRepo) Create(tx *gorm.DB, unit *model.Unit) error {
	f.units = append(f.units, *unit)
	return nil
}

func (f *fakeUnitRepo) FindByCode(code string) (*model.Unit, error) {
	for i := range f.units {
		if f.units[i].Code == code {
			return &f.units[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUnitRepo) FindAll() ([]model.Unit, error) {
	return f.units, nil
}

func (f *fakeUnitRepo) DeleteCascade(code string) error {
	kept := f.units[:0]
	for _, u := range f.units {
		if u.Code != code {
			kept = append(kept, u)
		}
	}
	f.units = kept
	return nil
}

// passThroughTx stands in for the gorm transaction runner.
func passThroughTx(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeProductRepo struct {
	products []model.Product
}

func (f *fakeProductRepo) Create(tx *gorm.DB, product *model.Product) error {
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeProductRepo) FindByCode(code string) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].Code == code {
			return &f.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) FindAll() ([]model.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Categories() ([]string, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range f.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

type fakeSequenceRepo struct {
	counters map[string]int64
}

func (f *fakeSequenceRepo) Next(name string) (int64, error) {
	if f.counters == nil {
		f.counters = make(map[string]int64)
	}
	f.counters[name]++
	return f.counters[name], nil
}

type fakeStockRepo struct {
	entries    map[string]*model.StockEntry
	products   map[string]model.Product
	log        []model.Transaction
	queryCalls int
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{
		entries:  make(map[string]*model.StockEntry),
		products: make(map[string]model.Product),
	}
}

func (f *fakeStockRepo) InitializeEntry(tx *gorm.DB, unitCode, productCode string, quantity int) error {
	f.entries[entryKey(unitCode, productCode)] = &model.StockEntry{
		UnitCode:    unitCode,
		ProductCode: productCode,
		Quantity:    quantity,
	}
	return nil
}

func (f *fakeStockRepo) Adjust(unitCode, productCode string, qty int, txType model.TransactionType, performedBy, notes string) (*model.StockEntry, *model.Transaction, error) {
	entry, ok := f.entries[entryKey(unitCode, productCode)]
	if !ok {
		return nil, nil, repository.ErrUnknownEntry
	}
	product, ok := f.products[productCode]
	if !ok {
		return nil, nil, repository.ErrUnknownProduct
	}

	unitPrice, err := entry.Apply(txType, qty, product.PurchasePrice, product.SellingPrice)
	if err != nil {
		return nil, nil, err
	}

	record := model.Transaction{
		UnitCode:    unitCode,
		ProductCode: productCode,
		Type:        txType,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		TotalAmount: float64(qty) * unitPrice,
		PerformedBy: performedBy,
		Notes:       notes,
	}
	f.log = append(f.log, record)
	return entry, &record, nil
}

func (f *fakeStockRepo) Query(unitCode string, q repository.StockQuery) ([]repository.StockRow, error) {
	f.queryCalls++
	var rows []repository.StockRow
	for _, entry := range f.entries {
		if entry.UnitCode != unitCode {
			continue
		}
		product := f.products[entry.ProductCode]
		rows = append(rows, repository.StockRow{
			UnitCode:      entry.UnitCode,
			ProductCode:   entry.ProductCode,
			Name:          product.Name,
			Category:      product.Category,
			Volume:        product.Volume,
			PurchasePrice: product.PurchasePrice,
			SellingPrice:  product.SellingPrice,
			Quantity:      entry.Quantity,
			SoldQuantity:  entry.SoldQuantity,
			UnitGain:      entry.UnitGain,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductCode < rows[j].ProductCode })
	return rows, nil
}

func (f *fakeStockRepo) FindRow(unitCode, productCode string) (*repository.StockRow, error) {
	rows, _ := f.Query(unitCode, repository.StockQuery{})
	for i := range rows {
		if rows[i].ProductCode == productCode {
			return &rows[i], nil
		}
	}
	return nil, repository.ErrUnknownEntry
}

func (f *fakeStockRepo) TotalsByProduct() ([]repository.ProductTotal, error) {
	byCode := make(map[string]int)
	for _, entry := range f.entries {
		byCode[entry.ProductCode] += entry.Quantity
	}
	totals := make([]repository.ProductTotal, 0, len(byCode))
	for code, qty := range byCode {
		totals = append(totals, repository.ProductTotal{ProductCode: code, TotalQuantity: qty})
	}
	return totals, nil
}

type fakeTxRepo struct {
	records []model.Transaction
}

func (f *fakeTxRepo) FindByUnit(unitCode string, q repository.TransactionQuery) ([]model.Transaction, error) {
	var out []model.Transaction
	for i := len(f.records) - 1; i >= 0; i-- {
		t := f.records[i]
		if t.UnitCode != unitCode {
			continue
		}
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if q.PerformedBy != "" && t.PerformedBy != q.PerformedBy {
			continue
		}
		out = append(out, t)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = repository.DefaultTransactionLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTxRepo) FindRecentByProduct(unitCode, productCode string, limit int) ([]model.Transaction, error) {
	var out []model.Transaction
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		t := f.records[i]
		if t.UnitCode == unitCode && t.ProductCode == productCode {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) FindSalesBetween(from, to time.Time) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range f.records {
		if t.Type != model.TxSale {
			continue
		}
		if t.CreatedAt.Before(from) || t.CreatedAt.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTxRepo) FindSalesByPerformer(unitCode, performedBy string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range f.records {
		if t.UnitCode == unitCode && t.PerformedBy == performedBy && t.Type == model.TxSale {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUnit(unitCode string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.UnitCode != nil && *u.UnitCode == unitCode {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindByRole(roleCode string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.RoleCode() == roleCode {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountByUnit(unitCode string) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.UnitCode != nil && *u.UnitCode == unitCode {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(username string) error {
	for i, u := range f.users {
		if u.Username == username {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.Password = hashedPassword
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.TokenVersion = version
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeRoleRepo struct {
	roles []model.Role
}

func (f *fakeRoleRepo) FindAll() ([]model.Role, error) { return f.roles, nil }

func (f *fakeRoleRepo) FindByCode(code string) (*model.Role, error) {
	for i := range f.roles {
		if f.roles[i].Code == code {
			return &f.roles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) AssignPrivileges(role *model.Role, privileges []model.Privilege) error {
	role.Privileges = privileges
	return nil
}

func (f *fakeRoleRepo) SeedDefaults() error { return errors.New("not supported") }

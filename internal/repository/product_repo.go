package repository

import (
	"go-warehouse-wms/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindByCode(code string) (*model.Product, error)
	FindAll() ([]model.Product, error)
	Categories() ([]string, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Create accepts a tx so catalog insert and stock fan-out commit together
func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(product).Error
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("code ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Product{}).Distinct("category").Order("category ASC").Pluck("category", &categories).Error
	return categories, err
}

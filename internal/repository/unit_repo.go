package repository

import (
	"go-warehouse-wms/internal/model"

	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(tx *gorm.DB, unit *model.Unit) error
	FindByCode(code string) (*model.Unit, error)
	FindAll() ([]model.Unit, error)
	DeleteCascade(code string) error
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

func (r *unitRepo) Create(tx *gorm.DB, unit *model.Unit) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(unit).Error
}

func (r *unitRepo) FindByCode(code string) (*model.Unit, error) {
	var unit model.Unit
	if err := r.db.First(&unit, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) FindAll() ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.Order("code ASC").Find(&units).Error
	return units, err
}

// DeleteCascade removes the unit together with its stock entries and
// transactions. The staff check belongs to the service; by the time this runs
// the unit must be referentially empty.
func (r *unitRepo) DeleteCascade(code string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.StockEntry{}, "unit_code = ?", code).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Transaction{}, "unit_code = ?", code).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Unit{}, "code = ?", code).Error
	})
}

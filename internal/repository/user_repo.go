package repository

import (
	"go-warehouse-wms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(username string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindByUnit(unitCode string) ([]model.User, error)
	FindByRole(roleCode string) ([]model.User, error)
	CountByUnit(unitCode string) (int64, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Delete(username string) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(userID uuid.UUID, version string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Role").Preload("Privileges").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Role").Preload("Privileges").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByUnit(unitCode string) ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Role").Where("unit_code = ?", unitCode).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) FindByRole(roleCode string) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.code = ?", roleCode).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

// CountByUnit counts supervisors and employees assigned to the unit. Unit
// deletion is blocked while this is non-zero.
func (r *userRepo) CountByUnit(unitCode string) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("unit_code = ?", unitCode).Count(&count).Error
	return count, err
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) Delete(username string) error {
	return r.db.Delete(&model.User{}, "username = ?", username).Error
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("token_version", version).Error
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/pkg/validator"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrUnknownRole    = errors.New("role not found")
	ErrNotUnitMember  = errors.New("user does not belong to this unit")
	ErrProtectedUser  = errors.New("admin accounts cannot be managed through staff operations")
)

type UserService interface {
	CreateStaff(req *CreateStaffRequest, creator string) (*model.User, error)
	DeleteStaff(username, scopeUnit string) error
	SetStaffPassword(username, scopeUnit, newPassword string) error
	ListUnitStaff(unitCode string) ([]model.UserResponse, error)
	ListSupervisors() ([]model.UserResponse, error)
}

type CreateStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	RoleCode string `json:"role_code" validate:"required,oneof=SUPERVISOR EMPLOYEE"`
	UnitCode string `json:"unit_code" validate:"required"`
}

// StaffUsername derives the login name from the staff member's identity and
// unit, e.g. "maria.papadaki.001".
func StaffUsername(name, surname, unitCode string) string {
	return strings.ToLower(fmt.Sprintf("%s.%s.%s", name, surname, unitCode))
}

type userService struct {
	userRepo repository.UserRepository
	unitRepo repository.UnitRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, unitRepo repository.UnitRepository,
	roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		unitRepo: unitRepo,
		roleRepo: roleRepo,
	}
}

func (s *userService) CreateStaff(req *CreateStaffRequest, creator string) (*model.User, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	if _, err := s.unitRepo.FindByCode(req.UnitCode); err != nil {
		return nil, ErrUnitNotFound
	}

	username := StaffUsername(req.Name, req.Surname, req.UnitCode)
	if existing, _ := s.userRepo.FindByUsername(username); existing != nil {
		return nil, ErrUsernameExists
	}

	role, err := s.roleRepo.FindByCode(req.RoleCode)
	if err != nil {
		return nil, ErrUnknownRole
	}

	unitCode := req.UnitCode
	user := &model.User{
		Username: username,
		Name:     req.Name,
		Surname:  req.Surname,
		RoleID:   &role.ID,
		Role:     role,
		UnitCode: &unitCode,
		IsActive: true,
		// Privileges follow the role at creation time
		Privileges: role.Privileges,
	}
	user.CreatedBy = creator
	user.UpdatedBy = creator

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteStaff removes a staff member. A non-empty scopeUnit restricts the
// operation to employees of that unit (the supervisor case); admins pass "".
func (s *userService) DeleteStaff(username, scopeUnit string) error {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return ErrUserNotFound
	}

	if err := s.checkScope(user, scopeUnit); err != nil {
		return err
	}

	return s.userRepo.Delete(username)
}

func (s *userService) SetStaffPassword(username, scopeUnit, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return ErrUserNotFound
	}

	if err := s.checkScope(user, scopeUnit); err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash password")
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *userService) checkScope(user *model.User, scopeUnit string) error {
	if user.RoleCode() == model.RoleAdmin {
		return ErrProtectedUser
	}
	if scopeUnit == "" {
		return nil
	}
	if user.RoleCode() != model.RoleEmployee || user.UnitCode == nil || *user.UnitCode != scopeUnit {
		return ErrNotUnitMember
	}
	return nil
}

func (s *userService) ListUnitStaff(unitCode string) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindByUnit(unitCode)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) ListSupervisors() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindByRole(model.RoleSupervisor)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

package service

import (
	"testing"

	"go-warehouse-wms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffUsername(t *testing.T) {
	assert.Equal(t, "maria.papadaki.001", StaffUsername("Maria", "Papadaki", "001"))
	assert.Equal(t, "john.doe.042", StaffUsername("JOHN", "DOE", "042"))
}

func staffTestService() (*fakeUserRepo, UserService) {
	userRepo := &fakeUserRepo{}
	unitRepo := &fakeUnitRepo{units: []model.Unit{
		{Code: "001", Name: "Central", VolumeCapacity: 100},
	}}
	roleRepo := &fakeRoleRepo{roles: []model.Role{
		{Code: model.RoleSupervisor, Name: "Supervisor"},
		{Code: model.RoleEmployee, Name: "Employee", Privileges: []model.Privilege{
			{Code: "stock:sell"},
		}},
	}}
	return userRepo, NewUserService(userRepo, unitRepo, roleRepo)
}

func TestCreateStaff(t *testing.T) {
	t.Run("Should create an employee with derived username and role privileges", func(t *testing.T) {
		userRepo, svc := staffTestService()

		user, err := svc.CreateStaff(&CreateStaffRequest{
			Name: "Maria", Surname: "Papadaki", Password: "secret1",
			RoleCode: model.RoleEmployee, UnitCode: "001",
		}, "admin")

		require.NoError(t, err)
		assert.Equal(t, "maria.papadaki.001", user.Username)
		assert.Equal(t, model.RoleEmployee, user.RoleCode())
		require.NotNil(t, user.UnitCode)
		assert.Equal(t, "001", *user.UnitCode)
		assert.True(t, user.IsActive)
		assert.True(t, user.HasPrivilege("stock:sell"))
		assert.True(t, user.CheckPassword("secret1"))
		assert.Len(t, userRepo.users, 1)
	})

	t.Run("Should reject a duplicate username", func(t *testing.T) {
		_, svc := staffTestService()
		req := &CreateStaffRequest{
			Name: "Maria", Surname: "Papadaki", Password: "secret1",
			RoleCode: model.RoleEmployee, UnitCode: "001",
		}

		_, err := svc.CreateStaff(req, "admin")
		require.NoError(t, err)

		_, err = svc.CreateStaff(req, "admin")
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("Should reject an unknown unit", func(t *testing.T) {
		_, svc := staffTestService()

		_, err := svc.CreateStaff(&CreateStaffRequest{
			Name: "Maria", Surname: "Papadaki", Password: "secret1",
			RoleCode: model.RoleEmployee, UnitCode: "999",
		}, "admin")

		assert.ErrorIs(t, err, ErrUnitNotFound)
	})

	t.Run("Should reject an admin role or a short password", func(t *testing.T) {
		_, svc := staffTestService()

		_, err := svc.CreateStaff(&CreateStaffRequest{
			Name: "Maria", Surname: "Papadaki", Password: "secret1",
			RoleCode: model.RoleAdmin, UnitCode: "001",
		}, "admin")
		assert.Error(t, err)

		_, err = svc.CreateStaff(&CreateStaffRequest{
			Name: "Maria", Surname: "Papadaki", Password: "abc",
			RoleCode: model.RoleEmployee, UnitCode: "001",
		}, "admin")
		assert.Error(t, err)
	})
}

func TestDeleteStaff(t *testing.T) {
	seed := func() (*fakeUserRepo, UserService) {
		userRepo, svc := staffTestService()
		for _, req := range []*CreateStaffRequest{
			{Name: "Maria", Surname: "Papadaki", Password: "secret1", RoleCode: model.RoleEmployee, UnitCode: "001"},
			{Name: "Nikos", Surname: "Georgiou", Password: "secret1", RoleCode: model.RoleSupervisor, UnitCode: "001"},
		} {
			if _, err := svc.CreateStaff(req, "admin"); err != nil {
				panic(err)
			}
		}
		return userRepo, svc
	}

	t.Run("Admin scope can delete anyone but admins", func(t *testing.T) {
		userRepo, svc := staffTestService()
		userRepo.users = append(userRepo.users, &model.User{
			Username: "admin", Role: &model.Role{Code: model.RoleAdmin}, IsActive: true,
		})

		err := svc.DeleteStaff("admin", "")
		assert.ErrorIs(t, err, ErrProtectedUser)
	})

	t.Run("Supervisor scope deletes own-unit employees only", func(t *testing.T) {
		userRepo, svc := seed()

		require.NoError(t, svc.DeleteStaff("maria.papadaki.001", "001"))
		assert.Len(t, userRepo.users, 1)

		// supervisors are out of a unit scope's reach
		err := svc.DeleteStaff("nikos.georgiou.001", "001")
		assert.ErrorIs(t, err, ErrNotUnitMember)
	})

	t.Run("Unit mismatch is rejected", func(t *testing.T) {
		_, svc := seed()

		err := svc.DeleteStaff("maria.papadaki.001", "002")
		assert.ErrorIs(t, err, ErrNotUnitMember)
	})

	t.Run("Unknown username", func(t *testing.T) {
		_, svc := seed()

		err := svc.DeleteStaff("ghost.user.001", "")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestSetStaffPassword(t *testing.T) {
	userRepo, svc := staffTestService()
	_, err := svc.CreateStaff(&CreateStaffRequest{
		Name: "Maria", Surname: "Papadaki", Password: "secret1",
		RoleCode: model.RoleEmployee, UnitCode: "001",
	}, "admin")
	require.NoError(t, err)

	require.Error(t, svc.SetStaffPassword("maria.papadaki.001", "", "abc"))

	require.NoError(t, svc.SetStaffPassword("maria.papadaki.001", "001", "newpass1"))
	user, err := userRepo.FindByUsername("maria.papadaki.001")
	require.NoError(t, err)
	assert.True(t, user.CheckPassword("newpass1"))
	assert.False(t, user.CheckPassword("secret1"))
}

func TestListUnitStaff(t *testing.T) {
	userRepo, svc := staffTestService()
	_, err := svc.CreateStaff(&CreateStaffRequest{
		Name: "Maria", Surname: "Papadaki", Password: "secret1",
		RoleCode: model.RoleEmployee, UnitCode: "001",
	}, "admin")
	require.NoError(t, err)
	userRepo.users[0].Password = "hash" // ToResponse must not expose it either way

	staff, err := svc.ListUnitStaff("001")

	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "maria.papadaki.001", staff[0].Username)
}

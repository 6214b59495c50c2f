package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiminh/hotpot-pos/models"
)

func TestGenerateUniquePIN(t *testing.T) {
	db := setupTestDB(t)
	em := NewEmployeeManager(db)

	pin, err := em.GenerateUniquePIN()
	require.NoError(t, err)
	assert.Len(t, pin, 4)
	for _, r := range pin {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestAddEmployeeGeneratesPINWhenOmitted(t *testing.T) {
	db := setupTestDB(t)
	em := NewEmployeeManager(db)

	employee, err := em.AddEmployee(AddEmployeeParams{Name: "Minh", Role: models.RoleStaff})
	require.NoError(t, err)
	assert.Len(t, employee.PinCode, 4)
	assert.Equal(t, models.EmployeeActive, employee.Status)
}

func TestAddEmployeeValidation(t *testing.T) {
	db := setupTestDB(t)
	em := NewEmployeeManager(db)

	_, err := em.AddEmployee(AddEmployeeParams{Role: models.RoleStaff})
	assert.ErrorIs(t, err, ErrInvalidEmployee)

	_, err = em.AddEmployee(AddEmployeeParams{Name: "Minh", Role: models.RoleCustomer})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = em.AddEmployee(AddEmployeeParams{Name: "Minh", Role: models.RoleStaff, PinCode: "12a"})
	assert.ErrorIs(t, err, ErrInvalidPIN)
}

func TestAuthenticateByPIN(t *testing.T) {
	db := setupTestDB(t)
	em := NewEmployeeManager(db)

	created, err := em.AddEmployee(AddEmployeeParams{
		Name: "Minh", Role: models.RoleCashier, PinCode: "4321",
	})
	require.NoError(t, err)

	found, err := em.Authenticate("4321")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = em.Authenticate("0000")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDeactivatedEmployeeCannotAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	em := NewEmployeeManager(db)

	created, err := em.AddEmployee(AddEmployeeParams{
		Name: "Minh", Role: models.RoleStaff, PinCode: "9876",
	})
	require.NoError(t, err)

	deactivated, err := em.DeactivateEmployee(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmployeeInactive, deactivated.Status)

	_, err = em.Authenticate("9876")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	// The record survives for attribution.
	var stored models.Employee
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, "Minh", stored.Name)
}

func TestUpdateEmployee(t *testing.T) {
	db := setupTestDB(t)
	em := NewEmployeeManager(db)

	created, err := em.AddEmployee(AddEmployeeParams{Name: "Minh", Role: models.RoleStaff})
	require.NoError(t, err)

	newRole := models.RoleCashier
	updated, err := em.UpdateEmployee(created.ID, UpdateEmployeeParams{Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCashier, updated.Role)

	badPIN := "ab"
	_, err = em.UpdateEmployee(created.ID, UpdateEmployeeParams{PinCode: &badPIN})
	assert.ErrorIs(t, err, ErrInvalidPIN)

	_, err = em.UpdateEmployee("ghost", UpdateEmployeeParams{})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

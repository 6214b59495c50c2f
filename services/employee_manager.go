package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/utils"
)

const pinAttempts = 50

// EmployeeManager maintains staff records and their PIN credentials.
type EmployeeManager struct {
	DB *gorm.DB
}

func NewEmployeeManager(db *gorm.DB) *EmployeeManager {
	return &EmployeeManager{DB: db}
}

func validPIN(pin string) bool {
	if len(pin) < 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GenerateUniquePIN draws random 4-digit PINs until one is unused among
// active employees. Gives up after a bounded number of attempts so a nearly
// saturated PIN space cannot hang the request.
func (em *EmployeeManager) GenerateUniquePIN() (string, error) {
	for i := 0; i < pinAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", err
		}
		pin := fmt.Sprintf("%04d", n.Int64())

		var count int64
		if err := em.DB.Model(&models.Employee{}).
			Where("pin_code = ? AND status = ?", pin, models.EmployeeActive).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return pin, nil
		}
	}
	return "", errors.New("could not find an unused PIN")
}

// AddEmployeeParams carries a new staff record. An empty PinCode means
// generate one.
type AddEmployeeParams struct {
	Name    string
	Role    models.Role
	PinCode string
}

func (em *EmployeeManager) AddEmployee(params AddEmployeeParams) (*models.Employee, error) {
	if params.Name == "" {
		return nil, ErrInvalidEmployee
	}
	if !models.IsEmployeeRole(params.Role) {
		return nil, ErrInvalidRole
	}

	pin := params.PinCode
	if pin == "" {
		generated, err := em.GenerateUniquePIN()
		if err != nil {
			return nil, err
		}
		pin = generated
	} else if !validPIN(pin) {
		return nil, ErrInvalidPIN
	}

	employee := models.Employee{
		Name:    params.Name,
		Role:    params.Role,
		PinCode: pin,
		Status:  models.EmployeeActive,
	}
	if err := em.DB.Create(&employee).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Employee %s added (%s)", employee.Name, employee.Role)
	return &employee, nil
}

// UpdateEmployeeParams holds partial updates; nil fields are untouched.
type UpdateEmployeeParams struct {
	Name    *string
	Role    *models.Role
	PinCode *string
	Status  *models.EmployeeStatus
}

func (em *EmployeeManager) UpdateEmployee(employeeID string, params UpdateEmployeeParams) (*models.Employee, error) {
	var employee models.Employee
	if err := em.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
		employee.Name = *params.Name
	}
	if params.Role != nil {
		if !models.IsEmployeeRole(*params.Role) {
			return nil, ErrInvalidRole
		}
		updates["role"] = *params.Role
		employee.Role = *params.Role
	}
	if params.PinCode != nil {
		if !validPIN(*params.PinCode) {
			return nil, ErrInvalidPIN
		}
		updates["pin_code"] = *params.PinCode
		employee.PinCode = *params.PinCode
	}
	if params.Status != nil {
		updates["status"] = *params.Status
		employee.Status = *params.Status
	}
	if len(updates) == 0 {
		return &employee, nil
	}

	if err := em.DB.Model(&models.Employee{}).Where("id = ?", employeeID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// DeactivateEmployee soft-deletes by flipping status to INACTIVE, so past
// shifts keep a valid reference.
func (em *EmployeeManager) DeactivateEmployee(employeeID string) (*models.Employee, error) {
	status := models.EmployeeInactive
	return em.UpdateEmployee(employeeID, UpdateEmployeeParams{Status: &status})
}

// Authenticate resolves a PIN to its active employee.
func (em *EmployeeManager) Authenticate(pin string) (*models.Employee, error) {
	if !validPIN(pin) {
		return nil, ErrInvalidPIN
	}
	var employee models.Employee
	err := em.DB.Where("pin_code = ? AND status = ?", pin, models.EmployeeActive).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// ActiveEmployees lists staff still on the roster.
func (em *EmployeeManager) ActiveEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	err := em.DB.Where("status = ?", models.EmployeeActive).
		Order("name asc").Find(&employees).Error
	return employees, err
}

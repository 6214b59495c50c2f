package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

type EmployeeController struct {
	Employees *services.EmployeeManager
}

func NewEmployeeController(employees *services.EmployeeManager) *EmployeeController {
	return &EmployeeController{Employees: employees}
}

func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	employees, err := ec.Employees.ActiveEmployees()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

type employeeReq struct {
	Name    string      `json:"name" binding:"required"`
	Role    models.Role `json:"role" binding:"required"`
	PinCode string      `json:"pin_code"`
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var body employeeReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ec.Employees.AddEmployee(services.AddEmployeeParams{
		Name:    body.Name,
		Role:    body.Role,
		PinCode: body.PinCode,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Employee created", employee)
}

type employeeUpdateReq struct {
	Name    *string                `json:"name"`
	Role    *models.Role           `json:"role"`
	PinCode *string                `json:"pin_code"`
	Status  *models.EmployeeStatus `json:"status"`
}

func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	var body employeeUpdateReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ec.Employees.UpdateEmployee(c.Param("employee_id"), services.UpdateEmployeeParams{
		Name:    body.Name,
		Role:    body.Role,
		PinCode: body.PinCode,
		Status:  body.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee updated", employee)
}

// DeactivateEmployee -> soft delete, keeps the record for attribution.
func (ec *EmployeeController) DeactivateEmployee(c *gin.Context) {
	employee, err := ec.Employees.DeactivateEmployee(c.Param("employee_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee deactivated", employee)
}

// GeneratePIN -> draw an unused PIN without creating an employee yet.
func (ec *EmployeeController) GeneratePIN(c *gin.Context) {
	pin, err := ec.Employees.GenerateUniquePIN()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "PIN generated", gin.H{"pin_code": pin})
}

type loginReq struct {
	PinCode string `json:"pin_code" binding:"required"`
}

// Login exchanges a valid PIN for a signed token.
func (ec *EmployeeController) Login(c *gin.Context) {
	var body loginReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ec.Employees.Authenticate(body.PinCode)
	if err != nil {
		// A wrong PIN is indistinguishable from a missing one to the caller.
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid PIN"))
		return
	}

	token, err := utils.GenerateToken(employee.ID, string(employee.Role))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"employee": employee,
	})
}

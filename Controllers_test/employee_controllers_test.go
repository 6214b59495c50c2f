package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/controllers"
	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

func setupTestDBForEmployees(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}))
	return db
}

func setupEmployeeRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	employeeCtrl := controllers.NewEmployeeController(services.NewEmployeeManager(db))
	router.POST("/login", employeeCtrl.Login)
	router.GET("/employees", employeeCtrl.GetAllEmployees)
	router.POST("/employees", employeeCtrl.CreateEmployee)
	router.DELETE("/employees/:employee_id", employeeCtrl.DeactivateEmployee)
	router.GET("/employees/generate-pin", employeeCtrl.GeneratePIN)
	return router
}

func TestCreateEmployeeAndLogin(t *testing.T) {
	db := setupTestDBForEmployees(t)
	router := setupEmployeeRouter(db)

	w := postJSON(t, router, "/employees", map[string]interface{}{
		"name":     "Minh",
		"role":     "CASHIER",
		"pin_code": "4321",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/login", map[string]interface{}{"pin_code": "4321"})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "CASHIER", claims.Role)
}

func TestLoginWrongPIN(t *testing.T) {
	db := setupTestDBForEmployees(t)
	router := setupEmployeeRouter(db)

	w := postJSON(t, router, "/login", map[string]interface{}{"pin_code": "0000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateEmployeeInvalidRole(t *testing.T) {
	db := setupTestDBForEmployees(t)
	router := setupEmployeeRouter(db)

	w := postJSON(t, router, "/employees", map[string]interface{}{
		"name": "Minh",
		"role": "CUSTOMER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratePINEndpoint(t *testing.T) {
	db := setupTestDBForEmployees(t)
	router := setupEmployeeRouter(db)

	req, _ := http.NewRequest("GET", "/employees/generate-pin", nil)
	w := newRecorder(router, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	pin := data["pin_code"].(string)
	assert.Len(t, pin, 4)
}

func TestDeactivateEmployeeEndpoint(t *testing.T) {
	db := setupTestDBForEmployees(t)
	router := setupEmployeeRouter(db)

	w := postJSON(t, router, "/employees", map[string]interface{}{
		"name":     "Minh",
		"role":     "STAFF",
		"pin_code": "9876",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["data"].(map[string]interface{})["id"].(string)

	req, _ := http.NewRequest("DELETE", "/employees/"+id, nil)
	w2 := newRecorder(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// Login afterwards fails.
	w = postJSON(t, router, "/login", map[string]interface{}{"pin_code": "9876"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

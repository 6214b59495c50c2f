package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
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
)

func setupTestDBForTables(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Table{}, &models.Order{}, &models.MenuItem{}))
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db, services.NewSessionManager(db))
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.POST("/tables/:table_id/session", tableCtrl.StartSession)
	router.POST("/tables/:table_id/checkout", tableCtrl.Checkout)
	router.POST("/tables/:table_id/close", tableCtrl.CloseTable)
	router.POST("/tables/:table_id/request-bill", tableCtrl.RequestBill)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAllTables(t *testing.T) {
	db := setupTestDBForTables(t)
	db.Create(&models.Table{Name: "A1", Status: models.TableEmpty})
	db.Create(&models.Table{Name: "B1", Status: models.TableOccupied})

	router := setupTableRouter(db)
	req, err := http.NewRequest("GET", "/tables", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of tables", response["message"])

	data := response["data"].([]interface{})
	assert.GreaterOrEqual(t, len(data), 2)
}

func TestStartSessionEndpoint(t *testing.T) {
	db := setupTestDBForTables(t)
	table := models.Table{Name: "A1", Status: models.TableEmpty}
	db.Create(&table)

	router := setupTableRouter(db)

	w := postJSON(t, router, "/tables/"+table.ID+"/session", map[string]interface{}{"guest_count": 4})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Session started", response["message"])

	// Second session on the same table conflicts.
	w = postJSON(t, router, "/tables/"+table.ID+"/session", map[string]interface{}{"guest_count": 2})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStartSessionUnknownTable(t *testing.T) {
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	w := postJSON(t, router, "/tables/ghost/session", map[string]interface{}{"guest_count": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutEndpointRejectsIdleTable(t *testing.T) {
	db := setupTestDBForTables(t)
	table := models.Table{Name: "A1", Status: models.TableEmpty}
	db.Create(&table)

	router := setupTableRouter(db)

	w := postJSON(t, router, "/tables/"+table.ID+"/checkout", map[string]interface{}{"payment_method": "CASH"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCloseTableEndpoint(t *testing.T) {
	db := setupTestDBForTables(t)
	table := models.Table{Name: "A1", Status: models.TableDirty}
	db.Create(&table)

	router := setupTableRouter(db)

	w := postJSON(t, router, "/tables/"+table.ID+"/close", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "EMPTY", data["status"])
}

func TestRequestBillEndpoint(t *testing.T) {
	db := setupTestDBForTables(t)
	table := models.Table{Name: "A1", Status: models.TableOccupied}
	db.Create(&table)

	router := setupTableRouter(db)

	w := postJSON(t, router, "/tables/"+table.ID+"/request-bill", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, "id = ?", table.ID).Error)
	assert.True(t, reloaded.BillRequested)
}

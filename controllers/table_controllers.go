package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/realtime"
	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

type TableController struct {
	DB       *gorm.DB
	Sessions *services.SessionManager
}

func NewTableController(db *gorm.DB, sessions *services.SessionManager) *TableController {
	return &TableController{DB: db, Sessions: sessions}
}

// GetAllTables -> the floor plan, ordered by section then name.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("section asc, name asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		respondServiceError(c, services.ErrTableNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

type tableReq struct {
	Name     string           `json:"name" binding:"required"`
	Section  string           `json:"section"`
	Position *models.Position `json:"position"`
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var body tableReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Name:     body.Name,
		Section:  body.Section,
		Position: body.Position,
		Status:   models.TableEmpty,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		respondServiceError(c, services.ErrTableNotFound)
		return
	}

	var body tableReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{"name": body.Name, "section": body.Section}
	if body.Position != nil {
		updates["position"] = body.Position
	}
	if err := tc.DB.Model(&table).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		respondServiceError(c, services.ErrTableNotFound)
		return
	}
	if table.CurrentOrderID != nil {
		respondServiceError(c, services.ErrTableOccupied)
		return
	}
	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", nil)
}

type startSessionReq struct {
	GuestCount int `json:"guest_count" binding:"required"`
}

// StartSession -> seat a walk-in party.
func (tc *TableController) StartSession(c *gin.Context) {
	var body startSessionReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := tc.Sessions.StartTableSession(c.Param("table_id"), body.GuestCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Session started", order)
}

func (tc *TableController) RequestBill(c *gin.Context) {
	table, err := tc.Sessions.RequestBill(c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	realtime.BroadcastStaffNotification(fmt.Sprintf("Table %s requested the bill", table.Name))
	utils.RespondJSON(c, http.StatusOK, "Bill requested", table)
}

type checkoutReq struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

func (tc *TableController) Checkout(c *gin.Context) {
	var body checkoutReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := tc.Sessions.CheckoutTable(c.Param("table_id"), body.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table checked out", result)
}

// CloseTable -> mark a cleaned table empty again.
func (tc *TableController) CloseTable(c *gin.Context) {
	table, err := tc.Sessions.CloseTable(c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table closed", table)
}

type moveTableReq struct {
	ToTableID string `json:"to_table_id" binding:"required"`
}

func (tc *TableController) MoveTable(c *gin.Context) {
	var body moveTableReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := tc.Sessions.MoveTable(c.Param("table_id"), body.ToTableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order == nil {
		utils.RespondJSON(c, http.StatusOK, "No active order to move", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order moved", order)
}

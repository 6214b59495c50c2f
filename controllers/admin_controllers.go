package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/realtime"
	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

type AdminController struct {
	DB       *gorm.DB
	Sessions *services.SessionManager
}

func NewAdminController(db *gorm.DB, sessions *services.SessionManager) *AdminController {
	return &AdminController{DB: db, Sessions: sessions}
}

// CloseDay -> end-of-day reset: tables emptied, leftovers archived.
func (ac *AdminController) CloseDay(c *gin.Context) {
	result, err := ac.Sessions.CloseDay()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	realtime.BroadcastDayClosed(result)
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// DeleteOldData -> retention sweep; ?days= overrides the 30-day default.
func (ac *AdminController) DeleteOldData(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		days = parsed
	}

	result, err := ac.Sessions.DeleteOldData(days)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Old data deleted", result)
}

// ClearTodayRevenue -> wipe today's orders outright.
func (ac *AdminController) ClearTodayRevenue(c *gin.Context) {
	result, err := ac.Sessions.ClearTodayRevenue()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Today's revenue cleared", result)
}

// GetDashboardStats -> the admin landing numbers.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var occupiedTables int64
	if err := ac.DB.Model(&models.Table{}).
		Where("status = ?", models.TableOccupied).
		Count(&occupiedTables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var openOrders int64
	if err := ac.DB.Model(&models.Order{}).
		Where("is_paid = ? AND archived = ?", false, false).
		Count(&openOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var paidToday []models.Order
	if err := ac.DB.Where("is_paid = ? AND updated_at >= ?", true, todayStart).
		Find(&paidToday).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	revenue := decimal.Zero
	for _, order := range paidToday {
		if order.GrandTotal != nil {
			revenue = revenue.Add(*order.GrandTotal)
		} else {
			revenue = revenue.Add(order.TotalAmount)
		}
	}

	var pendingReservations int64
	if err := ac.DB.Model(&models.Reservation{}).
		Where("status = ? AND archived = ?", models.ReservationPending, false).
		Count(&pendingReservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"occupied_tables":      occupiedTables,
		"open_orders":          openOrders,
		"paid_orders_today":    len(paidToday),
		"revenue_today":        revenue,
		"revenue_today_label":  utils.FormatCurrencyVND(revenue),
		"pending_reservations": pendingReservations,
		"connected_clients":    realtime.ClientCount(),
	})
}

package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/kitchen"
	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/utils"
)

type KitchenController struct {
	DB *gorm.DB
}

func NewKitchenController(db *gorm.DB) *KitchenController {
	return &KitchenController{DB: db}
}

func (kc *KitchenController) openOrdersAndTables() ([]models.Order, []models.Table, error) {
	var orders []models.Order
	if err := kc.DB.Where("is_paid = ? AND archived = ?", false, false).Find(&orders).Error; err != nil {
		return nil, nil, err
	}
	var tables []models.Table
	if err := kc.DB.Find(&tables).Error; err != nil {
		return nil, nil, err
	}
	return orders, tables, nil
}

// GetAggregatedDishes -> prep view: one row per dish/option variant across
// all open orders, busiest dish first.
func (kc *KitchenController) GetAggregatedDishes(c *gin.Context) {
	orders, tables, err := kc.openOrdersAndTables()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Aggregated dishes", kitchen.AggregateByDish(orders, tables))
}

// GetTickets -> the FIFO cooking queue. ?status=PENDING,PREPARING narrows
// (repeated status params work too); default is everything not yet served
// or cancelled.
func (kc *KitchenController) GetTickets(c *gin.Context) {
	statuses := []models.OrderItemStatus{models.ItemPending, models.ItemPreparing, models.ItemReady}
	if raw, ok := c.GetQueryArray("status"); ok && len(raw) > 0 {
		statuses = statuses[:0]
		for _, s := range raw {
			for _, part := range strings.Split(s, ",") {
				if part == "" {
					continue
				}
				statuses = append(statuses, models.OrderItemStatus(part))
			}
		}
	}

	orders, tables, err := kc.openOrdersAndTables()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tickets := kitchen.ItemsByStatus(orders, tables, statuses, time.Now().UnixMilli())
	utils.RespondJSON(c, http.StatusOK, "Kitchen tickets", tickets)
}

// GetReadyCounts -> plated dishes waiting to be run, per table.
func (kc *KitchenController) GetReadyCounts(c *gin.Context) {
	orders, _, err := kc.openOrdersAndTables()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ready counts by table", kitchen.ReadyCountByTable(orders))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/billing"
	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/realtime"
	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Sessions *services.SessionManager
}

func NewOrderController(db *gorm.DB, sessions *services.SessionManager) *OrderController {
	return &OrderController{DB: db, Sessions: sessions}
}

// GetAllOrders -> orders newest first; ?unpaid=true narrows to open ones.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Where("archived = ?", false).Order("created_at desc")
	if c.Query("unpaid") == "true" {
		query = query.Where("is_paid = ?", false)
	}
	if tableID := c.Query("table_id"); tableID != "" {
		query = query.Where("table_id = ?", tableID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		respondServiceError(c, services.ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

type addItemReq struct {
	MenuItemID       string           `json:"menu_item_id" binding:"required"`
	Quantity         int              `json:"quantity" binding:"required"`
	Note             string           `json:"note"`
	SelectedOptions  []string         `json:"selected_options"`
	VariantUnitPrice *decimal.Decimal `json:"variant_unit_price"`
}

// AddItem -> append a line to the table's active order.
func (oc *OrderController) AddItem(c *gin.Context) {
	var body addItemReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Sessions.AddItemToOrder(c.Param("table_id"), services.AddItemParams{
		MenuItemID:       body.MenuItemID,
		Quantity:         body.Quantity,
		Note:             body.Note,
		SelectedOptions:  body.SelectedOptions,
		VariantUnitPrice: body.VariantUnitPrice,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", order)
}

type itemStatusReq struct {
	Status models.OrderItemStatus `json:"status" binding:"required"`
}

// UpdateItemStatus -> drive one item through the preparation lifecycle.
func (oc *OrderController) UpdateItemStatus(c *gin.Context) {
	var body itemStatusReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, item, err := oc.Sessions.UpdateOrderItemStatus(c.Param("order_id"), c.Param("item_id"), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if item.Status == models.ItemReady {
		ready := 0
		for _, it := range order.Items {
			if it.Status == models.ItemReady {
				ready += it.Quantity
			}
		}
		realtime.BroadcastItemsReady(order.TableID, ready)
	}

	utils.RespondJSON(c, http.StatusOK, "Item status updated", gin.H{
		"order": order,
		"item":  item,
	})
}

type kitchenNoteReq struct {
	KitchenNote string `json:"kitchen_note"`
}

func (oc *OrderController) UpdateKitchenNote(c *gin.Context) {
	var body kitchenNoteReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Sessions.UpdateOrderItemKitchenNote(c.Param("order_id"), c.Param("item_id"), body.KitchenNote)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen note updated", order)
}

type discountReq struct {
	Type  models.DiscountType `json:"type" binding:"required"`
	Value decimal.Decimal     `json:"value"`
}

func (oc *OrderController) ApplyDiscount(c *gin.Context) {
	var body discountReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Sessions.ApplyDiscount(c.Param("order_id"), models.Discount{
		Type:  body.Type,
		Value: body.Value,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount applied", gin.H{
		"order":           order,
		"discount_amount": billing.DiscountAmount(order.TotalAmount, order.Discount),
	})
}

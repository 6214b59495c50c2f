package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

type MenuController struct {
	DB       *gorm.DB
	Sessions *services.SessionManager
}

func NewMenuController(db *gorm.DB, sessions *services.SessionManager) *MenuController {
	return &MenuController{DB: db, Sessions: sessions}
}

// GetAllMenus -> the whole catalog; ?category= and ?available=true filter.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	query := mc.DB.Order("category asc, name asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("available") == "true" {
		query = query.Where("available = ?", true)
	}

	var menus []models.MenuItem
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var menu models.MenuItem
	if err := mc.DB.First(&menu, "id = ?", c.Param("menu_id")).Error; err != nil {
		respondServiceError(c, services.ErrMenuItemNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

type menuReq struct {
	Name          string                 `json:"name" binding:"required"`
	Price         decimal.Decimal        `json:"price"`
	Category      models.ProductCategory `json:"category" binding:"required"`
	Image         string                 `json:"image"`
	Description   string                 `json:"description"`
	Available     *bool                  `json:"available"`
	Type          models.ItemType        `json:"type"`
	ComboGroups   models.ComboGroups     `json:"combo_groups"`
	IsRecommended bool                   `json:"is_recommended"`
	Ingredients   models.StringList      `json:"ingredients"`
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var body menuReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	itemType := body.Type
	if itemType == "" {
		itemType = models.TypeSingle
	}
	if itemType == models.TypeCombo && len(body.ComboGroups) == 0 {
		respondServiceError(c, services.ErrComboNeedsGroups)
		return
	}
	available := true
	if body.Available != nil {
		available = *body.Available
	}

	menu := models.MenuItem{
		Name:          body.Name,
		Price:         body.Price,
		Category:      body.Category,
		Image:         body.Image,
		Description:   body.Description,
		Available:     available,
		Type:          itemType,
		ComboGroups:   body.ComboGroups,
		IsRecommended: body.IsRecommended,
		Ingredients:   body.Ingredients,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var menu models.MenuItem
	if err := mc.DB.First(&menu, "id = ?", c.Param("menu_id")).Error; err != nil {
		respondServiceError(c, services.ErrMenuItemNotFound)
		return
	}

	var body menuReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	effectiveType := menu.Type
	if body.Type != "" {
		effectiveType = body.Type
	}
	if effectiveType == models.TypeCombo && len(body.ComboGroups) == 0 {
		respondServiceError(c, services.ErrComboNeedsGroups)
		return
	}

	updates := map[string]interface{}{
		"name":           body.Name,
		"price":          body.Price,
		"category":       body.Category,
		"image":          body.Image,
		"description":    body.Description,
		"combo_groups":   body.ComboGroups,
		"is_recommended": body.IsRecommended,
		"ingredients":    body.Ingredients,
	}
	if body.Type != "" {
		updates["type"] = body.Type
	}
	if body.Available != nil {
		updates["available"] = *body.Available
	}

	if err := mc.DB.Model(&menu).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	var menu models.MenuItem
	if err := mc.DB.First(&menu, "id = ?", c.Param("menu_id")).Error; err != nil {
		respondServiceError(c, services.ErrMenuItemNotFound)
		return
	}
	if err := mc.DB.Delete(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}

// MarkOutOfStock -> flip availability off so the item stops being sellable.
func (mc *MenuController) MarkOutOfStock(c *gin.Context) {
	menu, err := mc.Sessions.MarkItemOutOfStock(c.Param("menu_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu marked out of stock", menu)
}

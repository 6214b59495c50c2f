package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/controllers"
	"github.com/haiminh/hotpot-pos/middlewares"
	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	sessions := services.NewSessionManager(db)
	reservations := services.NewReservationManager(db)
	employees := services.NewEmployeeManager(db)

	tableCtrl := controllers.NewTableController(db, sessions)
	orderCtrl := controllers.NewOrderController(db, sessions)
	menuCtrl := controllers.NewMenuController(db, sessions)
	reservationCtrl := controllers.NewReservationController(reservations)
	employeeCtrl := controllers.NewEmployeeController(employees)
	kitchenCtrl := controllers.NewKitchenController(db)
	adminCtrl := controllers.NewAdminController(db, sessions)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// PIN login, rate limited against brute force.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", employeeCtrl.Login)
	}

	// Customer-facing menu browse, no auth.
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	{
		// TABLES (floor staff)
		auth.GET("/tables", tableCtrl.GetAllTables)
		auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
		auth.POST("/tables", middlewares.RequireRole(models.RoleAdmin), tableCtrl.CreateTable)
		auth.PATCH("/tables/:table_id", middlewares.RequireRole(models.RoleAdmin), tableCtrl.UpdateTable)
		auth.DELETE("/tables/:table_id", middlewares.RequireRole(models.RoleAdmin), tableCtrl.DeleteTable)
		auth.POST("/tables/:table_id/session", tableCtrl.StartSession)
		auth.POST("/tables/:table_id/items", orderCtrl.AddItem)
		auth.POST("/tables/:table_id/request-bill", tableCtrl.RequestBill)
		auth.POST("/tables/:table_id/checkout", tableCtrl.Checkout)
		auth.POST("/tables/:table_id/close", tableCtrl.CloseTable)
		auth.POST("/tables/:table_id/move", tableCtrl.MoveTable)

		// ORDERS
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:order_id/items/:item_id/status", orderCtrl.UpdateItemStatus)
		auth.PATCH("/orders/:order_id/items/:item_id/kitchen-note", orderCtrl.UpdateKitchenNote)
		auth.POST("/orders/:order_id/discount", middlewares.RequireRole(models.RoleCashier), orderCtrl.ApplyDiscount)

		// KITCHEN (chef displays)
		kitchenGroup := auth.Group("/kitchen")
		kitchenGroup.Use(middlewares.RequireRole(models.RoleKitchen, models.RoleStaff))
		{
			kitchenGroup.GET("/dishes", kitchenCtrl.GetAggregatedDishes)
			kitchenGroup.GET("/tickets", kitchenCtrl.GetTickets)
			kitchenGroup.GET("/ready-counts", kitchenCtrl.GetReadyCounts)
		}

		// RESERVATIONS
		auth.GET("/reservations", reservationCtrl.GetAllReservations)
		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
		auth.POST("/reservations/:reservation_id/check-in", reservationCtrl.CheckIn)

		// MENU MANAGEMENT (admin)
		menuGroup := auth.Group("/menus")
		menuGroup.Use(middlewares.RequireRole(models.RoleAdmin))
		{
			menuGroup.POST("", menuCtrl.CreateMenu)
			menuGroup.PATCH("/:menu_id", menuCtrl.UpdateMenu)
			menuGroup.DELETE("/:menu_id", menuCtrl.DeleteMenu)
		}
		// Out of stock can be flagged by the kitchen too.
		auth.POST("/menus/:menu_id/out-of-stock",
			middlewares.RequireRole(models.RoleKitchen, models.RoleStaff), menuCtrl.MarkOutOfStock)

		// EMPLOYEES (admin)
		employeeGroup := auth.Group("/employees")
		employeeGroup.Use(middlewares.RequireRole(models.RoleAdmin))
		{
			employeeGroup.GET("", employeeCtrl.GetAllEmployees)
			employeeGroup.POST("", employeeCtrl.CreateEmployee)
			employeeGroup.PATCH("/:employee_id", employeeCtrl.UpdateEmployee)
			employeeGroup.DELETE("/:employee_id", employeeCtrl.DeactivateEmployee)
			employeeGroup.GET("/generate-pin", employeeCtrl.GeneratePIN)
		}

		// ADMIN
		adminGroup := auth.Group("/admin")
		adminGroup.Use(middlewares.RequireRole(models.RoleAdmin))
		{
			adminGroup.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
			adminGroup.POST("/close-day", adminCtrl.CloseDay)
			adminGroup.DELETE("/old-data", adminCtrl.DeleteOldData)
			adminGroup.DELETE("/today-revenue", adminCtrl.ClearTodayRevenue)
		}
	}

	// WebSocket push feed.
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", controllers.RealtimeHandler)
	}

	return r
}

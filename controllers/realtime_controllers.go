package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/realtime"
	"github.com/haiminh/hotpot-pos/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RealtimeHandler upgrades the connection and parks it in the hub until the
// client disconnects. Clients only listen; all traffic is server push.
func RealtimeHandler(c *gin.Context) {
	roleValue, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleValue.(string)

	if !models.IsEmployeeRole(models.Role(role)) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	// Tokens outlive staff records; drop connections from deactivated staff.
	if employeeID, ok := c.Get("employeeID"); ok {
		var employee models.Employee
		err := utils.GetDB().
			Where("id = ? AND status = ?", employeeID, models.EmployeeActive).
			First(&employee).Error
		if err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
}

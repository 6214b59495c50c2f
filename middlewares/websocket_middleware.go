package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/haiminh/hotpot-pos/utils"
)

// WebSocketAuthMiddleware authenticates upgrade requests via a query token,
// since browsers cannot set headers on WebSocket handshakes.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("employeeID", claims.EmployeeID)

		c.Next()
	}
}

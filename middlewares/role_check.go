package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/utils"
)

// RequireRole gates a route group to the listed roles. ADMIN always passes.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role := models.Role(fmt.Sprint(raw))
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", allowed[0]))
		c.Abort()
	}
}

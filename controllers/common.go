package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

// respondServiceError maps manager errors onto HTTP statuses. Anything the
// classifiers do not recognize is a storage failure and surfaces as 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.NotFound(err):
		utils.RespondError(c, http.StatusNotFound, err)
	case services.Conflict(err):
		utils.RespondError(c, http.StatusConflict, err)
	case services.InvalidInput(err):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.Printf("Unexpected service error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

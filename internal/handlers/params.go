package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-center/internal/httperr"
)

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.Validation("invalid_id", "Id must be a positive integer."))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Respond(c, httperr.WithDetails(
			httperr.KindValidation,
			"invalid_request",
			"Invalid request body.",
			map[string]any{"reason": err.Error()},
		))
		return false
	}
	return true
}

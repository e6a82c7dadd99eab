package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"hospital-schemes-server/internal/utils"
)

// parseID reads a positive numeric path parameter. On failure it writes a
// BadRequest response and returns false.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid "+name+": "+raw)
		return 0, false
	}
	return uint(id), true
}

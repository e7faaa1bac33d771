package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON body with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 JSON body.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// NoContent writes a bodyless 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

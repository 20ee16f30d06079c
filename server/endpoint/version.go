package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/version"
)

// Version reports build version information.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetVersionInfo())
	}
}

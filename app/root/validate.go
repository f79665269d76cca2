package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate only runs behind the auth middleware, reaching it means the token is fine
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}

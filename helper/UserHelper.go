package helper

import (
	"minitwitter/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated principal placed in the context by
// the RequireAuth middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

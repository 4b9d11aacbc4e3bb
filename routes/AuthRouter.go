package routes

import (
	"minitwitter/controllers"

	"github.com/gin-gonic/gin"
)

func AuthRouter(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/signup", controllers.SignUp)
	incomingRoutes.POST("/login", controllers.Login)
	incomingRoutes.POST("/logout", controllers.Logout)
}

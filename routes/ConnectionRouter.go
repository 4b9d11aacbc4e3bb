package routes

import (
	"minitwitter/controllers"
	"minitwitter/middlewares"

	"github.com/gin-gonic/gin"
)

func ConnectionRouter(incomingRoutes *gin.Engine) {
	incomingRoutes.Use(middlewares.RequireAuth)

	incomingRoutes.POST("/follow", controllers.Follow)
	incomingRoutes.POST("/unfollow", controllers.Unfollow)
	incomingRoutes.GET("/followers/:user_id", controllers.GetAllFollowers)
	incomingRoutes.GET("/following/:user_id", controllers.GetAllFollowing)
}

package routes

import (
	"minitwitter/controllers"
	"minitwitter/middlewares"

	"github.com/gin-gonic/gin"
)

func FeedRouter(incomingRoutes *gin.Engine) {
	incomingRoutes.Use(middlewares.RequireAuth)

	incomingRoutes.GET("/feed", controllers.GetFeed)
}

package routes

import (
	"minitwitter/controllers"
	"minitwitter/middlewares"

	"github.com/gin-gonic/gin"
)

func PostRouter(incomingRoutes *gin.Engine) {
	incomingRoutes.Use(middlewares.RequireAuth)

	incomingRoutes.POST("/posts", controllers.CreatePost)
	incomingRoutes.GET("/posts", controllers.GetAllPosts)
	incomingRoutes.GET("/posts/:post_id", controllers.GetPost)
	incomingRoutes.PATCH("/posts/:post_id", controllers.UpdatePost)
	incomingRoutes.DELETE("/posts/:post_id", controllers.DeletePost)
	incomingRoutes.POST("/posts/like", controllers.LikePost)
	incomingRoutes.POST("/posts/dislike", controllers.DislikePost)
	incomingRoutes.GET("/images/:image_id", controllers.GetImage)
}

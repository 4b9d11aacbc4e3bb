package routes

import (
	"minitwitter/controllers"
	"minitwitter/middlewares"

	"github.com/gin-gonic/gin"
)

func UserRouter(incomingRoutes *gin.Engine) {
	incomingRoutes.Use(middlewares.RequireAuth)

	incomingRoutes.GET("/users", controllers.GetAllUsers)
	incomingRoutes.GET("/users/:user_id", controllers.GetUserById)
	incomingRoutes.PATCH("/users/:user_id", controllers.UpdateUser)
	incomingRoutes.DELETE("/users/:user_id", controllers.DeleteUser)
}

package main

import (
	"log"
	"minitwitter/initializers"
	"minitwitter/routes"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnvVariables()
}

func main() {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://127.0.0.1:5500", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.AuthRouter(router)

	// middleware using routes
	routes.UserRouter(router)
	routes.PostRouter(router)
	routes.ConnectionRouter(router)
	routes.FeedRouter(router)

	PORT := os.Getenv("PORT")

	if err := router.Run(":" + PORT); err != nil {
		log.Fatal(err)
	}
}

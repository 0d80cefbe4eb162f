package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ginpocketbase/controller"
	"ginpocketbase/database"
	"ginpocketbase/middlewares"
	"ginpocketbase/route"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println(err)
	}

	// Authenticate the admin session before accepting any request. A
	// gateway with no backend session must not serve.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pb, err := database.Connect(ctx)
	cancel()
	if err != nil {
		log.Fatal("Failed to connect to PocketBase: ", err)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Length", "Accept"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	rateLimit := middlewares.NewRateLimiter(1000, time.Minute)
	router.Use(rateLimit.Middleware())

	route.Register(router, controller.New(pb))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	router.Run(":" + port)
}

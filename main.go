package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("nutrition-api: ")
	log.SetFlags(0)

	// .env is optional — deployed environments set DB_URL/PORT directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	pool := getDBPool()
	defer pool.Close()

	h := &Handler{db: pool}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	fmt.Printf("Starting nutrition API on :%s\n", port)
	router.Run(":" + port)
}

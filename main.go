package main

import (
	"log"

	"blogapi/config"
	"blogapi/database"
	"blogapi/routes"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blogapi/docs"
)

// @title Blog API
// @version 1.0
// @description Blogging REST API with OTP email verification, posts, categories, comments and trash.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	if cfg.UsesDefaultJWTSecret() {
		if cfg.GinMode == gin.ReleaseMode {
			log.Fatal("JWT_SECRET must be set in release mode")
		}
		log.Println("Warning: JWT_SECRET is the built-in default; set it before deploying")
	}
	gin.SetMode(cfg.GinMode)
	utils.RegisterValidators()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if cfg.SeedCategories {
		if err := database.SeedCategories(db); err != nil {
			log.Fatalf("Failed to seed categories: %v", err)
		}
	}

	hubService := services.NewHubService()
	mailer := services.NewLogMailer(cfg.MailFrom)

	r := routes.NewEngine(cfg, db, hubService, mailer)

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"log"
	"net/http"
	"os"
	"time"

	_ "warehouse/api/swagger" // swagger docs
	"warehouse/internal/database"
	"warehouse/internal/handler"
	"warehouse/internal/middleware"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/internal/websocket"
	"warehouse/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

// @title           Warehouse Request Management API
// @version         1.0
// @description     Stock request workflow for a restaurant warehouse: catalog, requests, approvals and reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found or error loading it")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "database/warehouse.db"
	}

	db, err := database.NewConnection(database.Config{
		URL:  os.Getenv("DATABASE_URL"),
		Path: dbPath,
	})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to database successfully.")

	if err := database.Seed(db); err != nil {
		log.Fatalf("Database seeding failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	middleware.InitAuth(userRepo)

	authService := service.NewAuthService(userRepo, activityRepo)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(itemRepo, categoryRepo, departmentRepo, activityRepo, txManager)
	requestService := service.NewRequestService(requestRepo, userRepo, itemRepo, departmentRepo, activityRepo, notificationRepo, txManager, wsHub)
	reportService := service.NewReportService(db, requestRepo, itemRepo)
	activityService := service.NewActivityService(activityRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	requestHandler := handler.NewRequestHandler(requestService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reportHandler := handler.NewReportHandler(reportService)
	userHandler := handler.NewUserHandler(userService, notificationService, activityService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration. The frontend is served from the LAN.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.Success(gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		}))
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	requestHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	userHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

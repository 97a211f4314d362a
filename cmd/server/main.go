package main

import (
	"context" // context package is needed for the Redis ping
	"log"     // log package is needed for logging
	"time"

	"finapi/internal/api"        // HTTP handlers
	"finapi/internal/config"     // Configuration
	"finapi/internal/events"     // Transfer event publishing
	"finapi/internal/middleware" // JWT middleware
	"finapi/internal/repository/gormrepo"
	"finapi/internal/usecase"
	"finapi/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database. TranslateError maps driver duplicate-key
	// errors onto gorm.ErrDuplicatedKey for the unique email constraint.
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	cache := utils.NewCache(redisClient, 60*time.Second)

	// Transfer events go to Kafka when brokers are configured.
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	// Repositories and use cases, wired explicitly.
	users := gormrepo.NewUsers(db)
	statements := gormrepo.NewStatements(db)
	locks := usecase.NewLocks()

	createUser := usecase.NewCreateUser(users)
	authenticate := usecase.NewAuthenticateUser(users, cfg.JWTSecret)
	showProfile := usecase.NewShowUserProfile(users)
	createStatement := usecase.NewCreateStatement(users, statements, locks)
	getBalance := usecase.NewGetBalance(users, statements)
	getStatement := usecase.NewGetStatementOperation(users, statements)
	transfer := usecase.NewTransfer(users, statements, locks, publisher)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/users", api.RegisterHandler(createUser))   // Signup endpoint
	v1.POST("/sessions", api.LoginHandler(authenticate)) // Login endpoint

	// Protected routes
	authed := v1.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authed.GET("/profile", api.ProfileHandler(showProfile))
	authed.POST("/statements/deposit", api.DepositHandler(createStatement, cache))
	authed.POST("/statements/withdraw", api.WithdrawHandler(createStatement, cache))
	authed.GET("/statements/balance", api.BalanceHandler(getBalance, cache))
	authed.GET("/statements/:statement_id", api.GetStatementHandler(getStatement))
	authed.POST("/statements/transfers/:recipient_id", api.TransferHandler(transfer, cache))

	log.Println("Server running on " + cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"synx.backend/internal/config"
	"synx.backend/internal/domain/entities"
	agentinfra "synx.backend/internal/infrastructure/agent"
	"synx.backend/internal/infrastructure/blockchain"
	"synx.backend/internal/infrastructure/models"
	"synx.backend/internal/infrastructure/repositories"
	"synx.backend/internal/interfaces/http/handlers"
	"synx.backend/internal/interfaces/http/middleware"
	"synx.backend/internal/usecases"
	"synx.backend/pkg/crypto"
	"synx.backend/pkg/jwt"
	"synx.backend/pkg/logger"
	"synx.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newLLMClient = func(ctx context.Context, apiKey string) (*genai.Client, error) {
		return genai.NewClient(ctx, option.WithAPIKey(apiKey))
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, ""); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(&models.User{}, &models.Chat{}, &models.Message{}); err != nil {
			log.Printf("⚠️ Schema migration failed: %v", err)
		}
	}

	// Initialize JWT service and identity verifier
	jwtService := jwt.NewJWTService(cfg.Auth.Secret, cfg.Auth.AccessExpiry)
	identityVerifier, err := middleware.NewIdentityVerifier(cfg.Auth.IdentityVerificationKey, cfg.Auth.IdentityIssuer)
	if err != nil {
		return fmt.Errorf("failed to parse identity verification key: %w", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	// Initialize wallet provisioning
	sealer, err := crypto.NewSealer(cfg.Wallet.APIKeySecret)
	if err != nil {
		return fmt.Errorf("failed to initialize wallet sealer: %w", err)
	}
	provisioner := agentinfra.NewWalletProvisioner(userRepo, sealer, cfg.Wallet.NetworkID)

	// Initialize blockchain client factory
	clientFactory := blockchain.NewClientFactory()

	// Initialize agent
	memory := agentinfra.NewThreadMemory(cfg.Agent.MemoryWindow, cfg.Agent.MemoryTTL)
	llmClient, err := newLLMClient(context.Background(), cfg.Agent.LLMAPIKey)
	if err != nil {
		return fmt.Errorf("failed to initialize language model client: %w", err)
	}
	buildAgent := func(w *agentinfra.Wallet) (entities.Agent, error) {
		chain, err := clientFactory.GetEVMClient(cfg.Wallet.RPCURL)
		if err != nil {
			return nil, err
		}
		return agentinfra.NewGeminiAgent(llmClient, cfg.Agent.Model, memory, w, chain), nil
	}

	// Initialize usecases
	userUsecase := usecases.NewUserUsecase(userRepo)
	chatUsecase := usecases.NewChatUsecase(chatRepo, messageRepo, memory)
	sessionUsecase := usecases.NewAgentSessionUsecase(provisioner, buildAgent)
	walletUsecase := usecases.NewWalletUsecase(userRepo, clientFactory, cfg.Wallet.RPCURL)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chatUsecase, sessionUsecase)
	chatsHandler := handlers.NewChatsHandler(chatUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.IdentityMiddleware(jwtService, identityVerifier))

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerRoutes(r, routeDeps{
		chatHandler:   chatHandler,
		chatsHandler:  chatsHandler,
		userHandler:   userHandler,
		walletHandler: walletHandler,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Start server
	log.Printf("🚀 SYNX Backend starting on port %s", cfg.Server.Port)
	log.Printf("💬 Chat: http://localhost:%s/chat", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

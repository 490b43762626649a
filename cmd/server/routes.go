package main

import (
	"github.com/gin-gonic/gin"

	"synx.backend/internal/interfaces/http/handlers"
	"synx.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	chatHandler   *handlers.ChatHandler
	chatsHandler  *handlers.ChatsHandler
	userHandler   *handlers.UserHandler
	walletHandler *handlers.WalletHandler
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Streaming turn plus message history for one chat
	r.POST("/chat", d.chatHandler.Stream)
	r.GET("/chat", d.chatHandler.GetMessages)

	// Chat collection management
	chats := r.Group("/chats")
	{
		chats.GET("", d.chatsHandler.List)
		chats.POST("", d.chatsHandler.Create)
		chats.PATCH("/:chatId", d.chatsHandler.Update)
		chats.DELETE("/:chatId", d.chatsHandler.Delete)
	}

	// User registration (idempotent upsert keyed on DID)
	r.POST("/createUser", d.userHandler.CreateUser)

	// Wallet inspection
	r.GET("/wallet", d.walletHandler.GetWallet)

	// Prometheus scrape endpoint
	r.GET("/metrics", middleware.MetricsHandler())
}

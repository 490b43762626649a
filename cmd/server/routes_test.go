package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"synx.backend/internal/interfaces/http/handlers"
)

func TestRegisterRoutes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerRoutes(r, routeDeps{
		chatHandler:   &handlers.ChatHandler{},
		chatsHandler:  &handlers.ChatsHandler{},
		userHandler:   &handlers.UserHandler{},
		walletHandler: &handlers.WalletHandler{},
	})

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/chat"},
		{"GET", "/chat"},
		{"GET", "/chats"},
		{"POST", "/chats"},
		{"PATCH", "/chats/:chatId"},
		{"DELETE", "/chats/:chatId"},
		{"POST", "/createUser"},
		{"GET", "/wallet"},
		{"GET", "/metrics"},
	}

	routes := r.Routes()
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterRoutes_HealthStillResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)
	registerRoutes(r, routeDeps{
		chatHandler:   &handlers.ChatHandler{},
		chatsHandler:  &handlers.ChatsHandler{},
		userHandler:   &handlers.UserHandler{},
		walletHandler: &handlers.WalletHandler{},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

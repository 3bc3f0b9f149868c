package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicechat-backend/config"
	"voicechat-backend/handlers"
	"voicechat-backend/repository"
	"voicechat-backend/services"
	"voicechat-backend/ws"
)

// loggingMiddleware adds request logging
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s %s in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Sec-WebSocket-Protocol, Sec-WebSocket-Extensions, Sec-WebSocket-Key, Sec-WebSocket-Version, Upgrade, Connection")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	// --- config/env ---
	cfg := config.Load()

	log.Printf("Starting relay server on port %s", cfg.Port)

	// --- repos (in-memory) ---
	userRepo := repository.NewInMemoryUserRepo()
	roomRepo := repository.NewInMemoryRoomRepo(cfg.HistoryRetention)
	callRepo := repository.NewInMemoryCallRepo()
	groupRepo := repository.NewInMemoryGroupCallRepo()

	// --- websocket hub ---
	hub := ws.NewHub()

	// --- services ---
	presenceSvc := services.NewPresenceService(userRepo, roomRepo, hub, &cfg)
	chatSvc := services.NewChatService(userRepo, roomRepo, hub, &cfg)
	callSvc := services.NewCallService(userRepo, callRepo, hub)
	groupSvc := services.NewGroupCallService(userRepo, groupRepo, hub)
	sessionSvc := services.NewSessionService(&cfg)
	router := services.NewRouter(presenceSvc, chatSvc, callSvc, groupSvc)

	// --- handlers ---
	sessionH := handlers.NewSessionHandler(sessionSvc)

	// --- mux and routes ---
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
	})

	mux.HandleFunc("/api/session", sessionH.Create)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, router, sessionSvc)
	})

	// Bundled web client, when present
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
		log.Printf("Serving static files from %s", cfg.StaticDir)
	}

	// Apply middleware
	handler := withCORS(loggingMiddleware(mux))

	// --- server setup ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- graceful shutdown ---
	go func() {
		log.Printf("Relay server running on http://localhost:%s", cfg.Port)
		log.Printf("WS endpoint: ws://localhost:%s/ws", cfg.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/catebros/lostfound/internal/config"
	"github.com/catebros/lostfound/internal/database"
	postgresrepo "github.com/catebros/lostfound/internal/repository/postgres"
	"github.com/catebros/lostfound/internal/service"
	"github.com/catebros/lostfound/internal/transport/http/handlers"
	"github.com/catebros/lostfound/internal/transport/http/middleware"
	"github.com/catebros/lostfound/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	itemRepo := postgresrepo.NewItemRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)
	activityRepo := postgresrepo.NewActivityRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, activityRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo, activityRepo)
	itemService := service.NewItemService(itemRepo, userRepo, messageRepo, activityRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)
	activityService := service.NewActivityService(activityRepo)

	// Real-time hub
	hub := ws.NewHub()
	go hub.Run()
	notifier := ws.NewHubNotifier(hub)
	messageService.SetNotifier(notifier)
	itemService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	itemHandler := handlers.NewItemHandler(itemService)
	messageHandler := handlers.NewMessageHandler(messageService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Middleware
	auth := middleware.Auth(cfg.JWTSecret)
	staff := middleware.RequireStaff(userRepo)
	admin := middleware.RequireAdmin(userRepo)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Session
	mux.Handle("POST /api/v1/auth/logout", auth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))

	// Protected - Items. The unfiltered search is the moderation view,
	// so it sits behind the staff guard; regular users go through
	// /browse.
	mux.Handle("POST /api/v1/items", auth(http.HandlerFunc(itemHandler.Post)))
	mux.Handle("GET /api/v1/items", auth(staff(http.HandlerFunc(itemHandler.Search))))
	mux.Handle("GET /api/v1/items/browse", auth(http.HandlerFunc(itemHandler.Browse)))
	mux.Handle("GET /api/v1/items/mine", auth(http.HandlerFunc(itemHandler.ListMine)))
	mux.Handle("GET /api/v1/items/{id}", auth(http.HandlerFunc(itemHandler.Get)))
	mux.Handle("PATCH /api/v1/items/{id}", auth(http.HandlerFunc(itemHandler.Update)))
	mux.Handle("DELETE /api/v1/items/{id}", auth(http.HandlerFunc(itemHandler.Delete)))
	mux.Handle("GET /api/v1/items/{id}/claim-candidates", auth(http.HandlerFunc(itemHandler.ClaimCandidates)))
	mux.Handle("POST /api/v1/items/{id}/claim", auth(http.HandlerFunc(itemHandler.Claim)))

	// Protected - Messages
	mux.Handle("POST /api/v1/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /api/v1/conversations", auth(http.HandlerFunc(messageHandler.ListConversations)))
	mux.Handle("GET /api/v1/conversations/partners", auth(http.HandlerFunc(messageHandler.ListPartners)))
	mux.Handle("GET /api/v1/conversations/{user}", auth(http.HandlerFunc(messageHandler.Thread)))
	mux.Handle("DELETE /api/v1/conversations/{user}", auth(http.HandlerFunc(messageHandler.DeleteThread)))

	// Protected - Admin
	mux.Handle("GET /api/v1/users", auth(admin(http.HandlerFunc(userHandler.List))))
	mux.Handle("GET /api/v1/users/{id}", auth(admin(http.HandlerFunc(userHandler.Get))))
	mux.Handle("PATCH /api/v1/users/{id}", auth(admin(http.HandlerFunc(userHandler.Update))))
	mux.Handle("DELETE /api/v1/users/{id}", auth(admin(http.HandlerFunc(userHandler.Delete))))
	mux.Handle("GET /api/v1/activity", auth(admin(http.HandlerFunc(activityHandler.List))))

	// Real-time
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}

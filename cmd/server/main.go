package main

import (
	"log"
	"time"

	"guess-song-backend/internal/config"
	"guess-song-backend/internal/database"
	"guess-song-backend/internal/game"
	"guess-song-backend/internal/handlers"
	"guess-song-backend/internal/middleware"
	"guess-song-backend/internal/services"
	"guess-song-backend/internal/songs"
	"guess-song-backend/internal/telegram"
	"guess-song-backend/internal/ws"

	_ "guess-song-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Guess Song API
// @version         1.0
// @description     API for the song-guessing game bot with group sessions and leaderboards
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	leaderboard := services.NewLeaderboardService(db)

	library := songs.NewLibrary()
	library.Preload()

	client := telegram.NewClient(cfg.BotToken)
	messenger := telegram.NewMessenger(client)

	engine := game.NewEngine(game.Config{
		RoundDuration: time.Duration(cfg.RoundSeconds) * time.Second,
		MaxRounds:     cfg.MaxRounds,
		MinPlayers:    cfg.MinPlayers,
		MaxPlayers:    cfg.MaxPlayers,
		ClipTimeout:   time.Duration(cfg.ClipSendSecs) * time.Second,
		RevealPause:   time.Duration(cfg.RevealPauseSecs) * time.Second,
	}, library, messenger, leaderboard, hub)

	updateHandler := telegram.NewUpdateHandler(client, engine, leaderboard, cfg)
	bot := telegram.NewBot(client, updateHandler, cfg.WebhookSecret)

	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(engine)
	statsHandler := handlers.NewStatsHandler(leaderboard)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/group/:groupID", wsHandler.HandleWebSocket)

	if cfg.BotToken != "" && cfg.WebhookBaseURL != "" {
		if err := bot.Start(cfg.WebhookBaseURL); err != nil {
			log.Fatalf("failed to start bot: %v", err)
		}
		defer bot.Stop()
	} else {
		log.Println("BOT_TOKEN or WEBHOOK_BASE_URL not set, bot disabled")
	}
	r.POST("/webhook/bot", bot.HandleWebhook)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		games := api.Group("/games")
		games.Use(middleware.JWTAuth(authService))
		{
			games.GET("", gameHandler.ListGames)
			games.GET("/:groupID", gameHandler.GetGame)
			games.POST("/:groupID/end", gameHandler.EndGame)
		}

		groups := api.Group("/groups")
		{
			groups.GET("/:groupID/leaderboard", statsHandler.Leaderboard)
			groups.GET("/:groupID/history", statsHandler.History)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

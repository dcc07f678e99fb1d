package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/moodlog-backend/internal/config"
	"github.com/AnshRaj112/moodlog-backend/internal/database"
	"github.com/AnshRaj112/moodlog-backend/internal/handlers"
	"github.com/AnshRaj112/moodlog-backend/internal/middleware"
	"github.com/AnshRaj112/moodlog-backend/internal/routes"
	"github.com/AnshRaj112/moodlog-backend/internal/services"
	"github.com/AnshRaj112/moodlog-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL (accounts)
	log.Printf("Connecting to PostgreSQL...")
	postgresDB, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer postgresDB.Close()

	// Connect to Redis (sessions, rate limiting)
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Connect to MongoDB (entries, prompts); mask password in log
	log.Printf("Connecting to MongoDB...")
	log.Printf("MongoDB URI: %s", maskMongoURI(cfg.MongoURI))
	mongoDB, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo(mongoDB)

	// Wire stores and services; the handles are threaded explicitly so the
	// core stays testable against in-memory stores.
	sessionService := services.NewSessionService(redisClient)
	userService := services.NewUserService(postgresDB)
	entryService := services.NewEntryService(store.NewMongoEntries(mongoDB))
	promptService := services.NewPromptService(store.NewMongoPrompts(mongoDB))

	// Seed built-in global prompts on a fresh deployment
	if inserted, err := promptService.SeedSystemPrompts(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to seed system prompts: %v", err)
	} else if inserted > 0 {
		log.Printf("✅ Seeded %d system prompts", inserted)
	}

	// Cloudinary is optional; uploads are disabled without credentials
	var uploadService *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		uploadService, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	api := &routes.API{
		Auth:    handlers.NewAuthHandler(userService, sessionService),
		Entries: handlers.NewEntryHandler(entryService, sessionService),
		Prompts: handlers.NewPromptHandler(promptService, sessionService),
		Uploads: handlers.NewUploadHandler(uploadService, sessionService),
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimit(redisClient))
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, api)

	log.Printf("🚀 moodlog backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// maskMongoURI hides the password portion of a mongodb:// URI for logging.
func maskMongoURI(uri string) string {
	if !strings.Contains(uri, "@") {
		return uri
	}
	credsEnd := strings.Index(uri, "@")
	schemeEnd := strings.Index(uri, "://")
	if schemeEnd == -1 || schemeEnd+3 > credsEnd {
		return uri
	}
	creds := uri[schemeEnd+3 : credsEnd]
	if colon := strings.Index(creds, ":"); colon != -1 {
		return uri[:schemeEnd+3] + creds[:colon] + ":***" + uri[credsEnd:]
	}
	return uri
}

package main

import (
	"context"
	"net/http"
	"os"

	"remodely-shopify-core/internal/application"
	"remodely-shopify-core/internal/application/webhook_handlers"
	"remodely-shopify-core/internal/config"
	apiinfra "remodely-shopify-core/internal/infrastructure/api"
	"remodely-shopify-core/internal/infrastructure/encryption"
	appmiddleware "remodely-shopify-core/internal/infrastructure/middleware"
	"remodely-shopify-core/internal/infrastructure/repository"
	shopifyinfra "remodely-shopify-core/internal/infrastructure/shopify"
	"remodely-shopify-core/internal/infrastructure/statecache"
	"remodely-shopify-core/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDatabase)

	if cfg.EncryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}
	encryptionService, err := encryption.NewService(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	// State cache and webhook dedupe, redis-backed when available so
	// handshakes survive restarts and horizontal scaling.
	var stateStore ports.StateStore
	var webhookDeduper ports.WebhookDeduper
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		stateStore = statecache.NewRedisStateStore(redisClient)
		webhookDeduper = statecache.NewRedisWebhookDeduper(redisClient)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, using in-process state cache")
		stateStore = statecache.NewMemoryStateStore()
		webhookDeduper = statecache.NewMemoryWebhookDeduper()
	}

	// Initialize repositories
	userRepo := repository.NewMongoUserRepository(db)
	listingRepo := repository.NewMongoListingRepository(db)
	if err := listingRepo.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create listing indexes")
	}

	// Initialize Shopify infrastructure
	verifier := shopifyinfra.NewVerifier(cfg.Shopify.ClientSecret)
	shopifyClient := shopifyinfra.NewClient(cfg.Shopify.ClientID, cfg.Shopify.ClientSecret, logger)

	// Initialize application services
	registrar := application.NewWebhookRegistrar(shopifyClient, logger, cfg.APIURL)
	oauthService := application.NewOAuthService(
		userRepo,
		stateStore,
		shopifyClient,
		verifier,
		encryptionService,
		registrar,
		logger,
		cfg.APIURL,
		cfg.Shopify.ClientID,
		cfg.Shopify.ClientSecret,
	)
	importService := application.NewImportService(userRepo, listingRepo, shopifyClient, encryptionService, logger)
	listingService := application.NewListingService(listingRepo, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(logger, userRepo))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductUpdateHandler(logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductDeleteHandler(logger, userRepo, listingRepo))

	shopifyHandler := apiinfra.NewShopifyHandler(oauthService, importService, listingService, logger)
	webhookHandler := apiinfra.NewWebhookHandler(webhookDispatcher, webhookDeduper, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.MetricsMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	r.Route("/api/shopify", func(r chi.Router) {
		// Browser redirect target; Shopify signs it with the query HMAC
		// instead of a bearer token.
		r.Get("/auth/callback", shopifyHandler.AuthCallback)

		// Webhook deliveries are authenticated by body signature.
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.WebhookAuthMiddleware(verifier, cfg.Shopify.ClientSecret != "", logger))
			r.Post("/webhooks/{topic}", webhookHandler.Receive)
		})

		// Everything else requires a seller session.
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.JWTAuthMiddleware(cfg.JWTSecret, logger))

			r.Get("/auth/url", shopifyHandler.GetAuthURL)
			r.Get("/status", shopifyHandler.GetStatus)
			r.Post("/disconnect", shopifyHandler.Disconnect)
			r.Get("/products", shopifyHandler.ListProducts)
			r.Post("/import-product", shopifyHandler.ImportProduct)
			r.Post("/import-all", shopifyHandler.ImportAll)
			r.Get("/listings", shopifyHandler.ListListings)
			r.Delete("/listing/{id}", shopifyHandler.DeleteListing)
		})
	})

	logger.Info().Str("port", cfg.Port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

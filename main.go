package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapp/config"
	"notesapp/handler"
	"notesapp/middleware"
	"notesapp/repository"
	"notesapp/services"
	"notesapp/usecase"
	"notesapp/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func setupRouter(cfg *config.Config, svc handler.Services) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(),
		middleware.RequestTracingMiddleware(),
		middleware.RequestLogger(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.Server.AllowedOrigins),
		middleware.RequestSizeLimiter(cfg.Server.MaxBodyBytes),
	)

	handler.RegisterRoutes(router, svc)
	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	mongoClient, err := utils.ConnectMongo(ctx, cfg.Database.ClientOptions())
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}

	db := mongoClient.Database(cfg.Database.DatabaseName)
	accountsRepo := repository.NewAccountsRepo(db, cfg.Database.UsersCollection, cfg.Database.OperationTimeout)
	notesRepo := repository.NewNotesRepo(db, cfg.Database.NotesCollection, cfg.Database.OperationTimeout)

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.SetupIndexes(ctx, accountsRepo, notesRepo); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}
	cancel()

	tokens := services.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, cfg.Auth.TokenIssuer)
	log.Printf("Access tokens expire after %s", tokens.TTL())

	accountsService := &usecase.AccountsService{
		AccountsRepo: accountsRepo,
		Tokens:       tokens,
	}

	deps := []handler.Dependency{{
		Name:     "mongo",
		Required: true,
		Ping: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		},
	}}

	var profileCache *services.ProfileCache
	if cfg.Redis.URL != "" {
		profileCache, err = services.NewProfileCache(cfg.Redis.URL, cfg.Redis.ProfileTTL)
		if err != nil {
			log.Printf("Warning: Profile cache disabled: %v", err)
		} else {
			accountsService.Profiles = profileCache
			deps = append(deps, handler.Dependency{Name: "redis", Ping: profileCache.Ping})
			log.Println("Profile cache enabled")
		}
	}

	router := setupRouter(cfg, handler.Services{
		Accounts:     accountsService,
		Notes:        &usecase.NotesService{NotesRepo: notesRepo},
		Tokens:       tokens,
		Dependencies: deps,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if profileCache != nil {
		if err := profileCache.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}

	log.Println("Server shutdown complete")
}

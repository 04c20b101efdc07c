package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/api"
	"fooddelivery/cmd"
	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/adapters/out/broadcast"
	"fooddelivery/internal/adapters/out/jwtauth"
	"fooddelivery/internal/adapters/out/mongo"
	"fooddelivery/internal/adapters/out/mongo/notificationrepo"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs := cmd.LoadConfig()
	if err := configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	mongoClient, err := mongo.Connect(ctx, configs.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	notifications := notificationrepo.NewStore(mongoClient.Database(configs.MongoDatabase))
	if err := notifications.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create notification indexes: %v", err)
	}

	bus, err := cmd.NewBus(ctx, configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to start realtime relay: %v", err)
	}
	defer func() { _ = bus.Close() }()

	hub := ws.NewHub(logger)
	go func() {
		if err := broadcast.Forward(ctx, bus, hub, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("realtime relay stopped", "error", err)
		}
	}()

	tokens, err := jwtauth.NewService(configs.JWTSecret, configs.JWTTTL)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		db,
		notifications,
		broadcast.NewPublisher(bus),
		tokens,
		logger,
	)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, hub, configs, logger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, hub *ws.Hub, configs cmd.Config, logger *slog.Logger) {
	doc, err := api.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load API document: %v", err)
	}

	e, err := httpin.NewRouter(httpin.RouterConfig{
		Server:         app.CreateHTTPServer(),
		Verifier:       app.Tokens(),
		Realtime:       app.CreateRealtimeHandler(hub).Serve,
		Doc:            doc,
		AllowedOrigins: configs.CORSOrigins,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	logger.Info("HTTP server started", "port", configs.HTTPPort)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}

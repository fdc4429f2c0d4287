package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/auth"
	"github.com/heinrichnel/fleetops/internal/db"
	"github.com/heinrichnel/fleetops/internal/events"
	"github.com/heinrichnel/fleetops/internal/handlers"
	"github.com/heinrichnel/fleetops/internal/middleware"
	"github.com/heinrichnel/fleetops/internal/models"
	"github.com/heinrichnel/fleetops/internal/reminder"
	"github.com/heinrichnel/fleetops/internal/rules"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, relying on environment")
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("connected to MongoDB")

	stores := db.OpenStores(client, db.DatabaseName())
	watcher := db.NewWatcher(stores)
	if err := watcher.Refresh(context.Background()); err != nil {
		log.WithError(err).Fatal("initial snapshot load failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dbase := client.Database(db.DatabaseName())
	if err := watcher.Watch(ctx,
		dbase.Collection(db.TripsCollection),
		dbase.Collection(db.DieselCollection),
		dbase.Collection(db.MissedLoadsCollection),
	); err != nil {
		log.WithError(err).Warn("change streams unavailable, polling instead")
		go watcher.Poll(ctx, 15*time.Second)
	}

	publisher, err := events.Connect()
	if err != nil {
		log.WithError(err).Warn("mqtt unavailable, sync fan-out disabled")
	}
	defer publisher.Close()

	engine := rules.NewEngine(stores.Trips, stores.Diesel, stores.MissedLoads)

	costReminder := reminder.New(models.DefaultSystemCostRates())
	if err := costReminder.Start(); err != nil {
		log.WithError(err).Warn("cost reminder job not scheduled")
	}
	defer costReminder.Stop()

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}
	users := &db.MongoUserCollection{Collection: dbase.Collection(db.UsersCollection)}
	authHandler := handlers.NewAuthHandler(authService, users)

	api := handlers.NewHandler(watcher, engine, publisher)
	mux := http.NewServeMux()
	api.Routes(mux)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("/api/auth/profile/update", authHandler.UpdateProfile)
	mux.HandleFunc("/api/auth/change-password", authHandler.ChangePassword)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()
	handler := rateLimiter.RateLimit(300, 60)(authMiddleware.Authenticate(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

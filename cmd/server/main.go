package main

import (
	"log"
	"net/http"

	"github.com/sirupsen/logrus"

	"shiptrack/internal/auth"
	"shiptrack/internal/config"
	"shiptrack/internal/controllers"
	"shiptrack/internal/events"
	"shiptrack/internal/logger"
	"shiptrack/internal/middleware"
	"shiptrack/internal/routes"
	"shiptrack/internal/storage"
)

func main() {
	logger.Setup()

	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}

	tokens := middleware.NewTokenManager(cfg.JWTSecret)
	authSvc := auth.NewService(
		auth.NewGormProfileStore(db),
		auth.NewGormAccountStore(db),
		tokens,
	)

	assets, err := storage.NewDiskStore(cfg.AssetDir, cfg.PublicBaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("asset store setup failed")
	}

	var producer events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers, events.StatusTopic)
	} else {
		producer = events.NewConsoleProducer()
	}
	defer producer.Close()

	shipments := controllers.NewShipmentController(db, authSvc, assets, producer)

	r := routes.SetupRouter(routes.Deps{
		Tokens:    tokens,
		Auth:      controllers.NewAuthController(authSvc, cfg.ServiceKey),
		Shipments: shipments,
		Relays:    controllers.NewRelayController(db, authSvc),
		Admin:     controllers.NewAdminController(db, authSvc, cfg.ServiceKey),
		Legacy:    controllers.NewLegacyController(authSvc, tokens, shipments),
		AssetDir:  assets.Root(),
		AnonKey:   cfg.AnonKey,
	})

	handler := middleware.EnableCORS(r)

	log.Printf("server running at %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, handler))
}

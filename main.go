package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kliniksentosa/klinik-backend/config"
	"github.com/kliniksentosa/klinik-backend/internal/routes"
	"github.com/kliniksentosa/klinik-backend/pkg/storage/mariadb"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if os.Getenv("APP_ENV") == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.LoadConfig()

	db, err := mariadb.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("gagal koneksi database")
	}
	defer db.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	routes.Init(e, db, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Info().Str("port", port).Msg("server berjalan")
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server berhenti tidak normal")
		}
	}()

	// Tunggu sinyal untuk shutdown rapi.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("gagal shutdown server")
	}
	log.Info().Msg("server berhenti")
}

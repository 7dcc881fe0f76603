package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chairtime/chairtime-api/internal/config"
	dbpkg "github.com/chairtime/chairtime-api/internal/db"
	"github.com/chairtime/chairtime-api/internal/middleware"
	"github.com/chairtime/chairtime-api/internal/payment"
	"github.com/chairtime/chairtime-api/internal/routes"
)

func main() {

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	gateway, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.MercadoPagoWebhookSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure payment gateway")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, redisClient, gateway)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

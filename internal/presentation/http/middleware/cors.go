package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
)

var (
	defaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}
)

// CORSMiddleware allows the back-office frontend to call the API with
// credentials, so the auth cookie travels with each request
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins: orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods: orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders: orDefault(cfg.AllowedHeaders, defaultHeaders),
		ExposeHeaders: []string{
			"Content-Length", "Content-Type", "Content-Disposition",
			"X-Request-ID", "X-Idempotency-Replayed",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if !slices.Contains(corsConfig.AllowHeaders, IdempotencyKeyHeader) {
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, IdempotencyKeyHeader)
	}

	return cors.New(corsConfig)
}

func orDefault(values, fallback []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return slices.Clone(fallback)
	}
	return out
}

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/router"
	"github.com/nutrilens/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New wires the provider gateway, session store and handlers into a server
// instance.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) (*Server, error) {
	provider, err := service.NewGeminiService()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider gateway: %w", err)
	}

	sessions := service.NewSessionStore(redisClient)
	tokens := service.NewTokenService(cfg.JWTSecret)
	images := service.NewImageArchive(s3Config)
	analysisService := service.NewAnalysisService(provider, sessions, db, images)

	sessionHandler := api.NewSessionHandler(sessions, tokens)
	analysisHandler := api.NewAnalysisHandler(analysisService)
	limiter := middleware.NewAnalysisRateLimiter(redisClient)

	engine := router.SetupRouter(sessionHandler, analysisHandler, tokens, limiter)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

// Start begins serving. It blocks until the listener stops.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
	"github.com/veracitylabs/claimcheck/internal/pipeline"
)

// VerifierService is the pipeline surface the HTTP layer needs
type VerifierService interface {
	Verify(ctx context.Context, claim, claimContext string) (model.VerificationResult, error)
}

// Server is the HTTP surface of the verification pipeline
type Server struct {
	engine *gin.Engine
	pipe   VerifierService
	log    *logger.Logger
}

// New builds the router. Verification failures are normal structured
// outcomes (200); only the recovery middleware produces a 5xx.
func New(pipe VerifierService, log *logger.Logger, env string) *Server {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		pipe:   pipe,
		log:    log,
	}

	s.engine.Use(gin.Recovery(), RequestID(), Metrics())

	s.engine.GET("/health", s.health)
	s.engine.GET("/ready", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/v1")
	v1.POST("/verify", s.verify)

	return s
}

// Run serves until the listener fails
func (s *Server) Run(addr string) error {
	s.log.Infow("claimcheck API listening", "addr", addr)
	return s.engine.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "claimcheck"})
}

type verifyRequest struct {
	Claim   string `json:"claim"`
	Context string `json:"context"`
}

func (s *Server) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.pipe.Verify(c.Request.Context(), req.Claim, req.Context)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyClaim) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "claim is required"})
			return
		}
		// Anything else is an infrastructure error
		s.log.Errorw("verification request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

package http

import (
	"github.com/gin-gonic/gin"

	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type Server struct {
	log    *logger.Logger
	Engine *gin.Engine
}

func NewServer(log *logger.Logger, cfg RouterConfig) *Server {
	return &Server{
		log:    log.With("component", "HTTPServer"),
		Engine: NewRouter(cfg),
	}
}

// Run blocks serving HTTP until the listener fails or the process exits.
func (s *Server) Run(addr string) error {
	s.log.Info("HTTP server listening", "addr", addr)
	return s.Engine.Run(addr)
}

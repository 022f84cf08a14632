package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	http *http.Server
	log  *logrus.Logger
}

// New builds the server around a prepared router.
func New(router *gin.Engine, addr string, log *logrus.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	errChan := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.http.Addr).Info("starting server")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		s.log.WithField("signal", sig.String()).Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Stop shuts the server down without waiting for a signal.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"benefits-server/config"
	"benefits-server/logger"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BenefitsHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	log       *zap.Logger
}

func NewBenefitsHttpServer(router *Router, muxRouter *mux.Router, port string) *BenefitsHttpServer {
	return &BenefitsHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      ":" + port,
		log:       logger.Named("BenefitsHttpServer"),
	}
}

// Start registers the routes and serves until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *BenefitsHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("Starting server", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.SHUTDOWN_TIMEOUT_SECONDS*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Server exiting")
	return nil
}

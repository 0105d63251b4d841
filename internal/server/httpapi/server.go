package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Server serves a handler until its context is cancelled, then shuts down
// gracefully within shutdownTimeout.
type Server struct {
	address         string
	handler         http.Handler
	shutdownTimeout time.Duration
	logger          logging.Logger

	// ready receives the bound address once listening; used by tests.
	ready chan<- net.Addr
}

func NewServer(address string, h http.Handler, shutdownTimeout time.Duration, l logging.Logger) *Server {
	return &Server{
		address:         address,
		handler:         h,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
	}
}

func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		if s.ready != nil {
			s.ready <- listen.Addr()
		}
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

package stream

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/core"
)

// Server runs a hub's handler on a TCP listener
type Server struct {
	hub     *Hub
	srv     *http.Server
	ln      net.Listener
	logger  *log.Logger
	running atomic.Bool
}

// NewServer binds nothing until Start
func NewServer(addr string, hub *Hub) *Server {
	return &Server{
		hub:    hub,
		logger: hub.logger,
		srv: &http.Server{
			Addr:              addr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start listens synchronously so bind errors surface, then serves in the background
func (s *Server) Start() error {
	if s.running.Swap(true) {
		return nil
	}
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		s.running.Store(false)
		return errors.Wrapf(err, "stream: listen %s", s.srv.Addr)
	}
	s.ln = ln
	s.logger.Printf("[STREAM] serving on %s", ln.Addr())

	core.Go(func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("[STREAM] serve: %v", err)
		}
	})
	return nil
}

// Addr returns the bound address, nil before Start
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop disconnects clients and shuts the listener down
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.Swap(false) {
		return nil
	}
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}

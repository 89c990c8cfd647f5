// Package server is a small wrapper around net/http: it binds early so a
// bad address fails at startup, and exposes method-scoped route
// registration to the webhook package.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/webitel/wlog"

	"github.com/incidentops/triagebot/config"
)

type Server struct {
	cfg      *config.HttpServer
	log      *wlog.Logger
	mux      *http.ServeMux
	server   *http.Server
	listener net.Listener
}

func New(log *wlog.Logger, cfg *config.HttpServer) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Bind)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	server := &Server{
		cfg: cfg,
		log: log,
		mux: mux,
		server: &http.Server{
			Addr:    cfg.Bind,
			Handler: mux,
		},
		listener: listener,
	}

	return server, nil
}

func (s *Server) HandleFunc(method, pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(method+" "+s.cfg.Root+pattern, handler)
}

// Addr is the address the server actually bound to.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Handler exposes the routing table, mainly for handler tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.log.Info("serve http server", wlog.String("addr", s.Addr()))
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	defer s.listener.Close()

	return s.server.Shutdown(ctx)
}

func (s *Server) PublicURL() string {
	return s.cfg.PublicURL + s.cfg.Root
}

package tuning

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lixenwraith/shoal/config"
)

const shutdownTimeout = 5 * time.Second

// Server serves the tuning WebSocket plus plain HTTP views of state
type Server struct {
	hub    *Hub
	router *mux.Router
	logger *log.Logger
	access io.Writer
}

// NewServer routes /ws/tune, /healthz, /config and /telemetry; access logs go to access
func NewServer(hub *Hub, logger *log.Logger, access io.Writer) *Server {
	s := &Server{
		hub:    hub,
		router: mux.NewRouter(),
		logger: logger,
		access: access,
	}
	s.router.HandleFunc("/ws/tune", hub.Handler())
	s.router.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	s.router.HandleFunc("/config", s.configTOML).Methods(http.MethodGet)
	s.router.HandleFunc("/telemetry/{key}", s.metric).Methods(http.MethodGet)
	return s
}

// Handler returns the routed handler wrapped in access logging
func (s *Server) Handler() http.Handler {
	if s.access == nil {
		return s.router
	}
	return handlers.CombinedLoggingHandler(s.access, s.router)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, "ok\n")
}

// config renders the live parameters as TOML, loadable with --config
func (s *Server) configTOML(w http.ResponseWriter, r *http.Request) {
	data, err := config.Encode(s.hub.target.Live().Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	_, _ = w.Write(data)
}

func (s *Server) metric(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	v, ok := s.hub.target.Registry().Snapshot()[key]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, strconv.FormatFloat(v, 'g', -1, 64)+"\n")
}

// Serve accepts on ln until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("tuning server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "tuning server")
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown tuning server")
	}
	s.logger.Info("tuning server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}
	return s.Serve(ctx, ln)
}

// servers/web_server.go
package servers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"cmdbridge/handlers/web"
	"cmdbridge/interfaces"

	"github.com/gorilla/mux"
)

// WebServer serves the status API.
type WebServer struct {
	log  interfaces.Logger
	http *http.Server
}

// NewWebServer creates a WebServer listening on addr.
func NewWebServer(addr string, log interfaces.Logger, db interfaces.DataStore) *WebServer {
	return &WebServer{
		log: log,
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(log, db),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the status API routes.
func NewRouter(log interfaces.Logger, db interfaces.DataStore) *mux.Router {
	r := mux.NewRouter()
	statusHandler := web.NewStatusHandler(log, db)
	r.HandleFunc("/healthz", statusHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", statusHandler.Stats).Methods(http.MethodGet)
	r.HandleFunc("/api/replies/{sourceID}", statusHandler.Reply).Methods(http.MethodGet)
	return r
}

func (s *WebServer) Name() string {
	return "web"
}

// Start binds the address and serves in the background.
func (s *WebServer) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	s.log.Info("Web server listening", "addr", ln.Addr().String())
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Web server stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down, waiting up to five seconds.
func (s *WebServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

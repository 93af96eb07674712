package postboard

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/json-iterator/go"
	"github.com/rs/cors"
)

// Server hosts a mounted Component over HTTP
type Server struct {
	component *Component
	router    *mux.Router
	logger    Logger
}

// NewServer wires the page, JSON and health routes for c. c must already be
// mounted by the caller.
func NewServer(c *Component) *Server {
	s := &Server{
		component: c,
		router:    mux.NewRouter(),
		logger:    c.logger,
	}

	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)

	s.router.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	s.router.HandleFunc("/board.json", s.handleBoard).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return s
}

// Handler returns the http.Handler for the server
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	state := s.component.State()

	out, err := s.component.renderer.render(state)
	if err != nil {
		s.logger.Errorf("render page: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	if err := jsoniter.NewEncoder(w).Encode(s.component.State()); err != nil {
		s.logger.Errorf("encode board: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

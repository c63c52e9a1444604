package web

import (
	"github.com/matryer/way"
)

// URIPlay is the websocket endpoint.
const URIPlay = "/play"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/api/health", s.handleHealth)
	s.router.HandleFunc("GET", "/api/levels/:index", s.handleLevel)
	s.router.HandleFunc("GET", "/api/progress/:profile", s.handleProgress)
	s.router.HandleFunc("DELETE", "/api/progress/:profile", s.handleResetProgress)
	s.router.HandleFunc("GET", "/api/solves/:profile", s.handleSolves)
	s.router.HandleFunc("GET", URIPlay, s.handlePlay)
}

// Package api exposes the process's points and priority arrays over HTTP
// for read and command-write access.
package api

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"building_simulator/internal/simulator"
)

// NewRouter builds the REST surface for one equipment process, wrapped in
// access logging.
func NewRouter(engine *simulator.Engine, logWriter io.Writer) http.Handler {
	s := &server{engine: engine}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/api/state", s.getState).Methods(http.MethodGet)
	r.HandleFunc("/api/points", s.getPoints).Methods(http.MethodGet)
	r.HandleFunc("/api/points/{name}", s.getPoint).Methods(http.MethodGet)
	r.HandleFunc("/api/points/{name}/priority-array", s.getPriorityArray).Methods(http.MethodGet)
	r.HandleFunc("/api/points/{name}/write", s.postWrite).Methods(http.MethodPost)
	r.HandleFunc("/api/points/{name}/relinquish", s.postRelinquish).Methods(http.MethodPost)

	return handlers.CombinedLoggingHandler(logWriter, r)
}

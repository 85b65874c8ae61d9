package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"building_simulator/internal/command"
	"building_simulator/internal/simulator"
)

type server struct {
	engine *simulator.Engine
}

type writeRequest struct {
	Value    float64 `json:"value"`
	Priority int     `json:"priority"`
}

type relinquishRequest struct {
	Priority int `json:"priority"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// priorityArrayResponse renders the 16 slots with null for relinquished
// entries, slot 1 first.
type priorityArrayResponse struct {
	Point string     `json:"point"`
	Slots []*float64 `json:"slots"`
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *server) getState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *server) getPoints(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Points())
}

func (s *server) getPoint(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	for _, p := range s.engine.Points() {
		if p.Name == name {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown point %q", name)})
}

func (s *server) getPriorityArray(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	pa, err := s.engine.PriorityArray(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, priorityArrayResponse{Point: name, Slots: pa[:]})
}

func (s *server) postWrite(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := s.engine.Write(name, req.Value, req.Priority); err != nil {
		writeJSON(w, commandStatus(err), errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) postRelinquish(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var req relinquishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := s.engine.Relinquish(name, req.Priority); err != nil {
		writeJSON(w, commandStatus(err), errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func commandStatus(err error) int {
	if errors.Is(err, command.ErrUnknownPoint) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xtding233/gold-solver/internal/catalog"
	"github.com/xtding233/gold-solver/internal/solver"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

type errResp struct {
	Err string `json:"err"`
}

type solveReq struct {
	Gold   *float64 `json:"gold"`
	Owned  idList   `json:"owned"`
	Target string   `json:"target"`
}

type batchReq struct {
	Gold    *float64 `json:"gold"`
	Owned   idList   `json:"owned"`
	Targets idList   `json:"targets"`
}

type batchResp struct {
	Plans []solver.Plan `json:"plans"`
}

type itemResp struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	TotalCost   int      `json:"totalCost"`
	RecipeCost  int      `json:"recipeCost"`
	Children    []string `json:"from,omitempty"`
	Purchasable bool     `json:"purchasable"`
}

type healthResp struct {
	Status  string `json:"status"`
	Items   int    `json:"items"`
	MapID   string `json:"mapId"`
	Version string `json:"version,omitempty"`
	Digest  string `json:"digest,omitempty"`
}

// idList accepts item ids written as strings or numbers.
type idList []string

func (l *idList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return errors.New("item ids must be strings or numbers")
		}
		out = append(out, n.String())
	}
	*l = out
	return nil
}

type server struct {
	solver *solver.Solver
	log    *slog.Logger
}

func newServer(s *solver.Solver, log *slog.Logger) *server {
	return &server{solver: s, log: log}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /solve", s.handleSolveQuery)
	mux.HandleFunc("POST /solve", s.handleSolveBody)
	mux.HandleFunc("POST /solve/batch", s.handleBatch)
	mux.HandleFunc("GET /items/{id}", s.handleItem)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.withRequestID(mux)
}

// withRequestID tags every request with an id, echoed in X-Request-Id and in
// the access log line.
func (s *server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
}

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, "invalid " + key
	}
	return v, true, ""
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GET /solve?gold=1300&target=3071&owned=1036,1036
func (s *server) handleSolveQuery(w http.ResponseWriter, r *http.Request) {
	gold, ok, msg := parseFloat(r, "gold")
	if !ok {
		badRequest(w, "missing param gold")
		return
	}
	if msg != "" {
		badRequest(w, msg)
		return
	}
	target := r.URL.Query().Get("target")
	if catalog.NormalizeID(target) == "" {
		badRequest(w, "missing param target")
		return
	}
	owned := splitIDs(r.URL.Query().Get("owned"))
	writeJSON(w, http.StatusOK, s.solver.Solve(gold, owned, target))
}

func (s *server) handleSolveBody(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if msg := decodeBody(w, r, &req); msg != "" {
		badRequest(w, msg)
		return
	}
	if req.Gold == nil {
		badRequest(w, "missing field gold")
		return
	}
	if catalog.NormalizeID(req.Target) == "" {
		badRequest(w, "missing field target")
		return
	}
	writeJSON(w, http.StatusOK, s.solver.Solve(*req.Gold, req.Owned, req.Target))
}

func (s *server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if msg := decodeBody(w, r, &req); msg != "" {
		badRequest(w, msg)
		return
	}
	if req.Gold == nil {
		badRequest(w, "missing field gold")
		return
	}
	if len(req.Targets) == 0 {
		badRequest(w, "missing field targets")
		return
	}
	plans, err := s.solver.SolveMany(r.Context(), *req.Gold, req.Owned, req.Targets)
	if err != nil {
		// only a cancelled request gets here
		s.log.Warn("batch solve aborted", "targets", len(req.Targets), "err", err)
		writeJSON(w, http.StatusServiceUnavailable, errResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, batchResp{Plans: plans})
}

func (s *server) handleItem(w http.ResponseWriter, r *http.Request) {
	cat := s.solver.Catalog()
	it := cat.Lookup(r.PathValue("id"))
	if it == nil {
		writeJSON(w, http.StatusNotFound, errResp{Err: "unknown item"})
		return
	}
	writeJSON(w, http.StatusOK, itemResp{
		ID:          it.ID(),
		Name:        it.Name(),
		TotalCost:   it.TotalCost(),
		RecipeCost:  cat.RecipeCost(it),
		Children:    it.Children(),
		Purchasable: cat.IsPurchasable(it),
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	cat := s.solver.Catalog()
	writeJSON(w, http.StatusOK, healthResp{
		Status:  "ok",
		Items:   cat.Len(),
		MapID:   cat.MapID(),
		Version: cat.Version(),
		Digest:  cat.Digest(),
	})
}

// decodeBody reads a JSON body into v and returns a client-facing message on
// failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return "invalid body: " + err.Error()
	}
	return ""
}

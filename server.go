package main

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

//go:embed frontend
var frontendFS embed.FS

const (
	maxWords   = 40
	maxGridDim = 40
)

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*bucket
	rate      int           // tokens per interval
	interval  time.Duration // refill interval
	lastSweep time.Time
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

const (
	sweepEvery = time.Minute
	visitorTTL = 5 * time.Minute
)

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors:  make(map[string]*bucket),
		rate:      rate,
		interval:  interval,
		lastSweep: time.Now(),
	}
}

// sweep drops visitors idle for longer than visitorTTL. Called with mu held,
// at most once per sweepEvery.
func (rl *rateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < sweepEvery {
		return
	}
	rl.lastSweep = now
	for ip, b := range rl.visitors {
		if now.Sub(b.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.sweep(time.Now())

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	elapsed := time.Since(b.lastSeen)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		b.tokens += refill * rl.rate
		if b.tokens > rl.rate {
			b.tokens = rl.rate
		}
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Server is the HTTP front of the puzzle generator.
type Server struct {
	mux        *http.ServeMux
	store      Store
	source     WordSource
	logger     *log.Logger
	sse        *Broadcaster
	generateRL *rateLimiter
	placeRL    *rateLimiter
}

// NewServer creates a configured HTTP server. source supplies words for
// requests that do not carry a seed.
func NewServer(store Store, source WordSource, logger *log.Logger) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		store:      store,
		source:     source,
		logger:     logger,
		sse:        NewBroadcaster(),
		generateRL: newRateLimiter(10, time.Minute), // 10 puzzles/min per IP
		placeRL:    newRateLimiter(30, time.Second), // 30 placements/sec per IP
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/puzzles", s.handleCreatePuzzle)
	s.mux.HandleFunc("GET /api/puzzles", s.handleListPuzzles)
	s.mux.HandleFunc("GET /api/puzzles/{id}", s.handleGetPuzzle)
	s.mux.HandleFunc("GET /api/puzzles/{id}/candidates", s.handleCandidates)
	s.mux.HandleFunc("POST /api/puzzles/{id}/place", s.handlePlace)
	s.mux.HandleFunc("GET /api/puzzles/{id}/events", s.handlePuzzleEvents)

	frontendDir, _ := fs.Sub(frontendFS, "frontend")
	fileServer := http.FileServer(http.FS(frontendDir))
	s.mux.HandleFunc("GET /puzzle/{id}", s.handlePuzzlePage)
	s.mux.Handle("GET /", fileServer)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
	s.mux.ServeHTTP(w, r)
}

// --- Puzzle handlers ---

// POST /api/puzzles: sample words, center the anchor, store the puzzle.
func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.generateRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, retry later", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Words int     `json:"words"`
		Rows  int     `json:"rows"`
		Cols  int     `json:"cols"`
		Seed  *uint64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Words > maxWords || req.Rows > maxGridDim || req.Cols > maxGridDim {
		jsonError(w, "puzzle too large", http.StatusBadRequest)
		return
	}

	src := s.source
	if req.Seed != nil {
		src = NewListSource(*req.Seed)
	}

	pr := newProgress(s.logger)
	gen, err := InitGeneration(r.Context(), src, Options{Words: req.Words, Rows: req.Rows, Cols: req.Cols})
	switch {
	case errors.Is(err, ErrInvalidOptions):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrUnplaceable):
		jsonError(w, "no word fits this grid, try other dimensions", http.StatusUnprocessableEntity)
		return
	case errors.Is(err, ErrSourceExhausted):
		s.logger.Warn("word source exhausted", "words", req.Words, "err", err)
		jsonError(w, "not enough distinct words available", http.StatusServiceUnavailable)
		return
	case err != nil:
		s.logger.Error("generate puzzle", "err", err)
		jsonError(w, "generation failed", http.StatusInternalServerError)
		return
	}

	p := NewPuzzle(gen)
	if err := s.store.Save(r.Context(), p); err != nil {
		s.logger.Error("save puzzle", "id", p.ID, "err", err)
		jsonError(w, "could not store puzzle", http.StatusInternalServerError)
		return
	}
	pr.done("puzzle generated", "id", p.ID, "words", gen.RequestedWords, "crossings", len(gen.Crossings))

	writeJSON(w, http.StatusCreated, p)
}

// GET /api/puzzles: list all puzzles.
func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list puzzles", "err", err)
		jsonError(w, "could not list puzzles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/puzzles/{id}: get a single puzzle.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GET /api/puzzles/{id}/candidates: placements currently on offer.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": p.Candidates()})
}

// POST /api/puzzles/{id}/place: accept one candidate by index. The body
// echoes the candidate's endpoint and anchor so a list that shifted under
// the client is reported as stale.
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	if !s.placeRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, retry later", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Index *int `json:"index"`
		CandidateRef
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		jsonError(w, "field 'index' required", http.StatusBadRequest)
		return
	}
	if req.Endpoint.Text == "" || req.Anchor.Text == "" {
		jsonError(w, "fields 'endpoint' and 'anchor' required", http.StatusBadRequest)
		return
	}

	var placed Candidate
	p, err := s.store.Update(r.Context(), r.PathValue("id"), func(p *Puzzle) error {
		c, err := p.PlaceIndex(*req.Index, req.CandidateRef)
		placed = c
		return err
	})
	switch {
	case errors.Is(err, ErrPuzzleNotFound):
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrStaleCandidate), errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyPlaced):
		jsonError(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		s.logger.Error("place candidate", "id", r.PathValue("id"), "err", err)
		jsonError(w, "placement failed", http.StatusInternalServerError)
		return
	}

	snap := p.Snapshot()
	s.logger.Debug("word placed", "id", p.ID, "word", placed.Endpoint.Text, "orientation", placed.Endpoint.Orientation)
	if err := s.sse.Publish(p.ID, Event{
		Type:      "word_placed",
		Candidate: &placed,
		Placed:    snap.PlacedCount,
		Remaining: len(snap.UnplacedWords()),
	}); err != nil {
		s.logger.Warn("publish event", "err", err)
	}

	writeJSON(w, http.StatusOK, p)
}

// GET /api/puzzles/{id}/events: SSE stream.
func (s *Server) handlePuzzleEvents(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	first, err := json.Marshal(Event{Type: "puzzle_state", Puzzle: p})
	if err != nil {
		s.logger.Error("encode puzzle state", "id", p.ID, "err", err)
		jsonError(w, "could not encode puzzle", http.StatusInternalServerError)
		return
	}
	s.sse.ServeSSE(w, r, p.ID, string(first))
}

// --- Frontend page handlers ---

// GET /puzzle/{id}: serve the puzzle page.
func (s *Server) handlePuzzlePage(w http.ResponseWriter, _ *http.Request) {
	data, _ := frontendFS.ReadFile("frontend/puzzle.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// --- Helpers ---

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Puzzle, bool) {
	p, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, ErrPuzzleNotFound) {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.logger.Error("load puzzle", "id", r.PathValue("id"), "err", err)
		jsonError(w, "could not load puzzle", http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}

// clientIP strips the port from the remote address so that every
// connection from one host shares a bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

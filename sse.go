package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// Event is a message pushed to the players of a puzzle.
type Event struct {
	Type      string     `json:"type"`
	Puzzle    *Puzzle    `json:"puzzle,omitempty"`
	Candidate *Candidate `json:"candidate,omitempty"`
	Placed    int        `json:"placed,omitempty"`
	Remaining int        `json:"remaining,omitempty"`
}

// subscriber is a single SSE connection watching one puzzle.
type subscriber struct {
	ch       chan string
	puzzleID string
}

// Broadcaster fans events out to the SSE subscribers of each puzzle.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[*subscriber]struct{}),
	}
}

// Subscribe registers a subscriber for a puzzle.
func (b *Broadcaster) Subscribe(puzzleID string) *subscriber {
	s := &subscriber{
		ch:       make(chan string, sseChannelBuffer),
		puzzleID: puzzleID,
	}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call twice.
func (b *Broadcaster) Unsubscribe(s *subscriber) {
	b.mu.Lock()
	if _, ok := b.subs[s]; ok {
		delete(b.subs, s)
		close(s.ch)
	}
	b.mu.Unlock()
}

// Publish encodes evt and sends it to every subscriber of the puzzle.
// Subscribers with a full buffer miss the event.
func (b *Broadcaster) Publish(puzzleID string, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", evt.Type, err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs {
		if s.puzzleID != puzzleID {
			continue
		}
		select {
		case s.ch <- string(data):
		default:
		}
	}
	return nil
}

// Subscribers returns the number of open streams on a puzzle.
func (b *Broadcaster) Subscribers(puzzleID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for s := range b.subs {
		if s.puzzleID == puzzleID {
			n++
		}
	}
	return n
}

// ServeSSE streams a puzzle's events until the client goes away. first,
// when non-empty, is written before anything else.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, puzzleID string, first string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s := b.Subscribe(puzzleID)
	defer b.Unsubscribe(s)

	if first != "" {
		fmt.Fprintf(w, "data: %s\n\n", first)
		flusher.Flush()
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-s.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

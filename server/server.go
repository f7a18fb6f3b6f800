// Package server exposes a built timeline over HTTP for cursor-tracking and
// highlighting clients.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/scoretime/builder"
	"github.com/jsphweid/scoretime/chord"
	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/file"
	"github.com/jsphweid/scoretime/model"
	"github.com/jsphweid/scoretime/sequence"
	"github.com/rs/cors"
)

// Server holds the timeline of one score file. Sequences are never mutated
// after a build; reloads swap in a new one.
type Server struct {
	path string

	mu       sync.RWMutex
	seq      *sequence.EventSequence
	revision string
	modTime  time.Time

	debounced func(f func())
}

func New(path string) (*Server, error) {
	s := &Server{
		path:      path,
		debounced: debounce.New(constants.ReloadDebounce),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromSequence serves an already built sequence with no backing file.
func NewFromSequence(seq *sequence.EventSequence) *Server {
	return &Server{
		seq:       seq,
		revision:  uuid.New().String(),
		debounced: debounce.New(constants.ReloadDebounce),
	}
}

// Reload rebuilds the timeline from the score file.
func (s *Server) Reload() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return err
	}
	score, err := file.LoadScore(s.path)
	if err != nil {
		return err
	}
	seq := builder.Build(score)

	s.mu.Lock()
	s.seq = seq
	s.revision = uuid.New().String()
	s.modTime = info.ModTime()
	s.mu.Unlock()

	for _, d := range seq.Diagnostics() {
		log.Printf("%s: %s (part %d, measure %d, tick %d)", s.path, d.Message, d.Part, d.Measure, d.Tick)
	}
	return nil
}

// ScheduleReload coalesces bursts of change notifications into one rebuild.
func (s *Server) ScheduleReload() {
	s.debounced(func() {
		if err := s.Reload(); err != nil {
			log.Printf("Could not reload %s: %v", s.path, err)
		}
	})
}

// Watch polls the score file until stop is closed and schedules a reload
// whenever its modification time changes.
func (s *Server) Watch(stop <-chan struct{}) {
	if s.path == "" {
		return
	}
	ticker := time.NewTicker(constants.ReloadPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			info, err := os.Stat(s.path)
			if err != nil {
				continue
			}
			s.mu.RLock()
			changed := !info.ModTime().Equal(s.modTime)
			s.mu.RUnlock()
			if changed {
				s.ScheduleReload()
			}
		}
	}
}

func (s *Server) snapshot() (*sequence.EventSequence, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq, s.revision
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/timeline", s.HandleTimeline).Methods("GET")
	router.HandleFunc("/events", s.HandleEvents).Methods("GET")
	router.HandleFunc("/events/{tick}", s.HandleEvent).Methods("GET")
	router.HandleFunc("/attributes/{tick}", s.HandleAttributes).Methods("GET")
	router.HandleFunc("/tempos", s.HandleTempos).Methods("GET")
	router.HandleFunc("/loops", s.HandleLoops).Methods("GET")
	router.HandleFunc("/endings", s.HandleEndings).Methods("GET")
	router.HandleFunc("/diagnostics", s.HandleDiagnostics).Methods("GET")
	router.HandleFunc("/build", HandleBuild).Methods("POST")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func tickVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	tick, err := strconv.Atoi(mux.Vars(r)["tick"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "tick must be an integer")
		return 0, false
	}
	return tick, true
}

func eventResponse(e *model.Event) model.EventResponse {
	return model.EventResponse{Event: *e, Chord: chord.OnsetKey(e)}
}

func (s *Server) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	seq, revision := s.snapshot()
	summary := seq.Summary(s.path)
	summary.Revision = revision
	w.Header().Set("ETag", strconv.Quote(revision))
	writeJSON(w, http.StatusOK, summary)
}

// HandleEvents lists events, optionally limited to ?from=&to= ticks.
func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	seq, _ := s.snapshot()
	events := seq.Events()

	q := r.URL.Query()
	if q.Has("from") || q.Has("to") {
		from, to := 0, int(^uint(0)>>1)
		var err error
		if v := q.Get("from"); v != "" {
			if from, err = strconv.Atoi(v); err != nil {
				writeError(w, http.StatusBadRequest, "from must be an integer")
				return
			}
		}
		if v := q.Get("to"); v != "" {
			if to, err = strconv.Atoi(v); err != nil {
				writeError(w, http.StatusBadRequest, "to must be an integer")
				return
			}
		}
		events = seq.EventsBetween(from, to)
	}

	res := make([]model.EventResponse, 0, len(events))
	for _, e := range events {
		res = append(res, eventResponse(e))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleEvent(w http.ResponseWriter, r *http.Request) {
	tick, ok := tickVar(w, r)
	if !ok {
		return
	}
	seq, _ := s.snapshot()
	e := seq.Event(tick)
	if e == nil {
		writeError(w, http.StatusNotFound, "no event at tick "+strconv.Itoa(tick))
		return
	}
	writeJSON(w, http.StatusOK, eventResponse(e))
}

func (s *Server) HandleAttributes(w http.ResponseWriter, r *http.Request) {
	tick, ok := tickVar(w, r)
	if !ok {
		return
	}
	seq, _ := s.snapshot()
	a := seq.Attributes(tick)
	if a == nil {
		writeError(w, http.StatusNotFound, "no attributes in effect at tick "+strconv.Itoa(tick))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) HandleTempos(w http.ResponseWriter, r *http.Request) {
	seq, _ := s.snapshot()
	writeJSON(w, http.StatusOK, nonNil(seq.Tempos()))
}

func (s *Server) HandleLoops(w http.ResponseWriter, r *http.Request) {
	seq, _ := s.snapshot()
	writeJSON(w, http.StatusOK, nonNil(seq.Loops()))
}

func (s *Server) HandleEndings(w http.ResponseWriter, r *http.Request) {
	seq, _ := s.snapshot()
	writeJSON(w, http.StatusOK, nonNil(seq.Endings()))
}

func (s *Server) HandleDiagnostics(w http.ResponseWriter, r *http.Request) {
	seq, _ := s.snapshot()
	writeJSON(w, http.StatusOK, nonNil(seq.Diagnostics()))
}

// HandleBuild builds the posted score document and returns the whole
// timeline. YAML is accepted unless the content type says JSON.
func HandleBuild(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	isJSON := strings.Contains(r.Header.Get("Content-Type"), "json")
	score, err := file.ParseScore(body, isJSON)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, builder.Build(score).Timeline())
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

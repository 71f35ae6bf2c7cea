package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/glossa"
	"github.com/aretw0/glossa/internal/runtime"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Trainer is the surface of glossa.Trainer the server needs.
type Trainer interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	Compile(ctx context.Context, lang string) ([]domain.Record, error)
	CompileResolvers(ctx context.Context, lang string) ([]domain.Record, error)
	Expand(template string) ([]string, error)
	Train(ctx context.Context) (*runtime.Report, error)
	Model(ctx context.Context, name string) (*domain.Model, error)
	Models(ctx context.Context) ([]string, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves the training API.
type Server struct {
	Trainer Trainer
	Streams *StreamManager

	// trainMu serializes POST /train within this process.
	trainMu sync.Mutex
	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the trainer.
func NewHandler(trainer Trainer, opts ...Option) http.Handler {
	server := &Server{
		Trainer: trainer,
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/domains", server.GetDomains)
	r.Get("/corpus/{lang}", server.GetCorpus)
	r.Get("/resolvers/{lang}", server.GetResolvers)
	r.Post("/expand", server.PostExpand)
	r.Post("/train", server.PostTrain)
	r.Get("/models", server.ListModels)
	r.Get("/models/{name}", server.GetModel)
	r.Get("/events", server.SubscribeEvents)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "glossa",
		"version": glossa.Version,
	})
}

// DomainInfo is the JSON view of a domain.
type DomainInfo struct {
	Key    string      `json:"key"`
	Name   string      `json:"name"`
	Skills []SkillInfo `json:"skills"`
}

// SkillInfo is the JSON view of a skill.
type SkillInfo struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
	Intents   []string `json:"intents"`
}

// GetDomains handles the GET /domains request.
func (s *Server) GetDomains(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Trainer.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, describeDomains(snap))
}

func describeDomains(snap *domain.Snapshot) []DomainInfo {
	out := make([]DomainInfo, 0, len(snap.Domains))
	for _, d := range snap.Domains {
		info := DomainInfo{Key: d.Key, Name: d.Name, Skills: []SkillInfo{}}
		for _, sk := range d.Skills {
			si := SkillInfo{Key: sk.Key, Name: sk.Name, Languages: sk.Languages(), Intents: []string{}}
			seen := make(map[string]struct{})
			for _, lang := range si.Languages {
				doc, _ := sk.Document(lang)
				for _, action := range doc.ActionNames() {
					seen[domain.Intent(sk.Name, action)] = struct{}{}
				}
			}
			for intent := range seen {
				si.Intents = append(si.Intents, intent)
			}
			sort.Strings(si.Intents)
			info.Skills = append(info.Skills, si)
		}
		out = append(out, info)
	}
	return out
}

// CorpusResponse is a compiled corpus. Error is set when compilation stopped
// early; Records then holds what was produced before the failure.
type CorpusResponse struct {
	Lang    string          `json:"lang"`
	Records []domain.Record `json:"records"`
	Error   string          `json:"error,omitempty"`
}

// GetCorpus handles the GET /corpus/{lang} request.
func (s *Server) GetCorpus(w http.ResponseWriter, r *http.Request) {
	s.serveCorpus(w, r, s.Trainer.Compile)
}

// GetResolvers handles the GET /resolvers/{lang} request.
func (s *Server) GetResolvers(w http.ResponseWriter, r *http.Request) {
	s.serveCorpus(w, r, s.Trainer.CompileResolvers)
}

func (s *Server) serveCorpus(w http.ResponseWriter, r *http.Request, compile func(context.Context, string) ([]domain.Record, error)) {
	lang := chi.URLParam(r, "lang")
	records, err := compile(r.Context(), lang)
	resp := CorpusResponse{Lang: lang, Records: records}
	if resp.Records == nil {
		resp.Records = []domain.Record{}
	}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = statusFor(err)
	}
	writeJSON(w, status, resp)
}

// ExpandRequest is the body of POST /expand.
type ExpandRequest struct {
	Template string `json:"template"`
}

// ExpandResponse lists the alternatives of a template. Truncated is set when the
// expansion limit was hit.
type ExpandResponse struct {
	Template     string   `json:"template"`
	Alternatives []string `json:"alternatives"`
	Truncated    bool     `json:"truncated,omitempty"`
}

// PostExpand handles the POST /expand request.
func (s *Server) PostExpand(w http.ResponseWriter, r *http.Request) {
	var req ExpandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	alts, err := s.Trainer.Expand(req.Template)
	resp := ExpandResponse{Template: req.Template, Alternatives: alts}
	if err != nil {
		if !errors.Is(err, domain.ErrExpansionLimit) {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.Truncated = true
	}
	if resp.Alternatives == nil {
		resp.Alternatives = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ModelResult is the JSON view of runtime.ModelResult.
type ModelResult struct {
	Name     string `json:"name"`
	Records  int    `json:"records"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// TrainResponse is the JSON view of runtime.Report.
type TrainResponse struct {
	Languages []string      `json:"languages"`
	Models    []ModelResult `json:"models"`
	Duration  string        `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

func newTrainResponse(report *runtime.Report, err error) TrainResponse {
	resp := TrainResponse{Languages: []string{}, Models: []ModelResult{}}
	if report != nil {
		if report.Languages != nil {
			resp.Languages = report.Languages
		}
		resp.Duration = report.Duration.Round(time.Millisecond).String()
		for _, m := range report.Models {
			mr := ModelResult{Name: m.Name, Records: m.Records, Duration: m.Duration.Round(time.Millisecond).String()}
			if m.Err != nil {
				mr.Error = m.Err.Error()
			}
			resp.Models = append(resp.Models, mr)
		}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// PostTrain handles the POST /train request.
func (s *Server) PostTrain(w http.ResponseWriter, r *http.Request) {
	s.trainMu.Lock()
	defer s.trainMu.Unlock()

	report, err := s.Trainer.Train(r.Context())
	status := http.StatusOK
	if err != nil {
		slog.Error("Training failed", "err", err)
		status = statusFor(err)
	} else {
		s.Streams.Broadcast(trainedTopic, "trained")
	}
	writeJSON(w, status, newTrainResponse(report, err))
}

// ListModels handles the GET /models request.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.Trainer.Models(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// GetModel handles the GET /models/{name} request.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	m, err := s.Trainer.Model(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func statusFor(err error) int {
	var modelErr *domain.ModelError
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedActionType):
		return http.StatusUnprocessableEntity
	case errors.As(err, &modelErr):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

const trainedTopic = "trained"

// StreamManager fans out server-side notifications to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
	}
}

// Subscribe registers a buffered channel for topic. The returned func
// unsubscribes and closes it.
func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			slog.Warn("SSE: Client buffer full, dropping message", "topic", topic)
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE). It streams project
// changes ("data: <path>") and completed trainings ("event: trained").
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: Streaming not supported")
		return
	}

	changes, err := s.Trainer.Watch(r.Context())
	if err != nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("watch error: %w", err))
		return
	}

	trained, cancel := s.Streams.Subscribe(trainedTopic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			slog.Debug("SSE client disconnected")
			return
		case event, ok := <-changes:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		case msg, ok := <-trained:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: trained\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

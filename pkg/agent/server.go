package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/model"
)

const maxChatBodyBytes = 1 << 20

// Chat requests across all sessions are limited to chatRate per second
// with bursts of chatBurst.
const (
	chatRate  = rate.Limit(5)
	chatBurst = 10
)

var errRateLimited = errors.New("too many requests")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

var (
	metricChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interpreter",
		Name:      "chat_requests_total",
		Help:      "Chat requests handled by server mode, by outcome.",
	}, []string{"outcome"})
	metricChatDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "interpreter",
		Name:      "chat_duration_seconds",
		Help:      "Time spent answering a chat request.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})
	metricSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "interpreter",
		Name:      "sessions_active_total",
		Help:      "Conversations held in memory by server mode.",
	})
)

// Server exposes the interpreter over HTTP. Each session keeps its own
// message history; settings are shared.
type Server struct {
	interp  *Interpreter
	router  chi.Router
	limiter *rate.Limiter

	mu       sync.Mutex
	sessions map[string][]model.Message
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// NewServer builds the HTTP surface for interp.
func NewServer(interp *Interpreter) *Server {
	s := &Server{
		interp:   interp,
		limiter:  rate.NewLimiter(chatRate, chatBurst),
		sessions: make(map[string][]model.Message),
	}

	router := chi.NewRouter()
	router.Get("/healthz", s.handleHealthz)
	router.Get("/settings", s.handleSettings)
	router.Post("/chat", s.handleChat)
	router.Get("/ws", s.handleWebsocket)
	router.Delete("/sessions/{id}", s.handleDeleteSession)
	router.Handle("/metrics", promhttp.Handler())
	s.router = router
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve runs server mode on ServerAddr until ctx is cancelled.
func (i *Interpreter) Serve(ctx context.Context) error {
	addr := strings.TrimSpace(i.ServerAddr)
	if addr == "" {
		addr = DefaultServerAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewServer(i).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		i.log().Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	i.term().Info("Serving on http://%s", addr)
	return g.Wait()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	i := s.interp
	respondJSON(w, http.StatusOK, map[string]any{
		"auto_run":              i.AutoRun,
		"custom_instructions":   i.CustomInstructions,
		"force_task_completion": i.ForceTaskCompletion,
		"max_output":            i.MaxOutput,
		"offline":               i.Offline,
		"os":                    i.OS,
		"safe_mode":             i.SafeMode,
		"llm":                   i.LLM.Snapshot(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&req); err != nil {
		metricChatRequests.WithLabelValues("bad_request").Inc()
		respondError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	resp, status, err := s.answer(r.Context(), req, uuid.NewString())
	if err != nil {
		respondError(w, status, err)
		return
	}
	respondJSON(w, status, resp)
}

// handleWebsocket holds one conversation per connection. Each text frame
// is a chatRequest; each reply is a chatResponse or an error payload.
// Frames without a session_id continue the connection's own session.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.interp.log().Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxChatBodyBytes)

	session := uuid.NewString()
	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.interp.log().Debug("websocket read failed", "error", err)
			}
			return
		}

		var payload any
		resp, status, err := s.answer(r.Context(), req, session)
		if err != nil {
			payload = errorPayload(status, err)
		} else {
			payload = resp
		}
		if err := conn.WriteJSON(payload); err != nil {
			s.interp.log().Debug("websocket write failed", "error", err)
			return
		}
	}
}

// answer runs one chat turn. Requests without a session_id use fallbackID.
// The returned status is the HTTP status describing the outcome.
func (s *Server) answer(ctx context.Context, req chatRequest, fallbackID string) (chatResponse, int, error) {
	start := time.Now()
	defer func() { metricChatDuration.Observe(time.Since(start).Seconds()) }()

	if !s.limiter.Allow() {
		metricChatRequests.WithLabelValues("rate_limited").Inc()
		return chatResponse{}, http.StatusTooManyRequests, errRateLimited
	}
	if strings.TrimSpace(req.Message) == "" {
		metricChatRequests.WithLabelValues("bad_request").Inc()
		return chatResponse{}, http.StatusBadRequest, errors.New("message is required")
	}

	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		id = fallbackID
	} else if _, err := uuid.Parse(id); err != nil {
		metricChatRequests.WithLabelValues("bad_request").Inc()
		return chatResponse{}, http.StatusBadRequest, errors.New("session_id must be a UUID")
	}

	history, reply, err := s.interp.respond(ctx, s.history(id), req.Message, false)
	s.store(id, history)
	if err != nil {
		status := http.StatusBadGateway
		if oierrors.IsCode(err, oierrors.ErrCodeBudget) {
			status = http.StatusPaymentRequired
		}
		metricChatRequests.WithLabelValues("error").Inc()
		return chatResponse{}, status, err
	}

	metricChatRequests.WithLabelValues("ok").Inc()
	return chatResponse{SessionID: id, Reply: reply}, http.StatusOK, nil
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	metricSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) history(id string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.sessions[id]...)
}

func (s *Server) store(id string, history []model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = history
	metricSessions.Set(float64(len(s.sessions)))
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorPayload(status, err))
}

func errorPayload(status int, err error) map[string]any {
	payload := map[string]any{
		"error":  err.Error(),
		"status": status,
	}
	if code := oierrors.GetCode(err); code != oierrors.ErrCodeInternal {
		payload["code"] = string(code)
	}
	return payload
}

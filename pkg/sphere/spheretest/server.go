// Package spheretest is an in-process fake Sphere backend for end-to-end
// tests. It mirrors the backend's _testing fixture surface: stub the trade
// endpoint with a forced status code, inject order-stack payloads into the
// event stream, and read back captured trade requests.
package spheretest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/joripage/ghost-trader/pkg/sphere"
)

var upgrader = websocket.Upgrader{}

type tradeStub struct {
	statusCode int
	body       json.RawMessage
}

type Server struct {
	httpServer *httptest.Server

	mu       sync.Mutex
	stub     *tradeStub
	captured []*sphere.TradeOrderRequest
	conns    map[*websocket.Conn]struct{}
}

func NewServer() *Server {
	s := &Server{
		conns: make(map[*websocket.Conn]struct{}),
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", s.handleLogout).Methods(http.MethodPost)
	router.HandleFunc("/api/order/trade", s.handleTrade).Methods(http.MethodPost)
	router.HandleFunc("/ws/orders", s.handleOrderStream).Methods(http.MethodGet)
	router.HandleFunc("/_testing/trade", s.handleStubTrade).Methods(http.MethodPost)
	router.HandleFunc("/_testing/trade", s.handleCapturedTrades).Methods(http.MethodGet)
	router.HandleFunc("/_testing/inject", s.handleInject).Methods(http.MethodPost)

	s.httpServer = httptest.NewServer(router)
	return s
}

// BaseURL is the REST endpoint for a WSClient.
func (s *Server) BaseURL() string {
	return s.httpServer.URL
}

// StreamURL is the websocket endpoint for a WSClient.
func (s *Server) StreamURL() string {
	return "ws" + strings.TrimPrefix(s.httpServer.URL, "http")
}

func (s *Server) Close() {
	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	s.httpServer.Close()
}

// StubTrade forces the next trade submissions to answer with the given
// status code and body.
func (s *Server) StubTrade(statusCode int, body interface{}) {
	raw, _ := json.Marshal(body)
	s.mu.Lock()
	s.stub = &tradeStub{statusCode: statusCode, body: raw}
	s.mu.Unlock()
}

// CapturedTrades returns every trade request received so far.
func (s *Server) CapturedTrades() []*sphere.TradeOrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*sphere.TradeOrderRequest, len(s.captured))
	copy(out, s.captured)
	return out
}

// Inject broadcasts an order-stacks payload to every stream subscriber.
func (s *Server) Inject(stacks *sphere.OrderStacks) {
	payload, _ := json.Marshal(stacks)

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": "token-" + uuid.NewString()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req sphere.TradeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.captured = append(s.captured, &req)
	stub := s.stub
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if stub != nil {
		w.WriteHeader(stub.statusCode)
		_, _ = w.Write(stub.body)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(&sphere.OrderResponse{
		ID:         req.ID,
		InstanceID: "instance-" + uuid.NewString(),
	})
}

func (s *Server) handleOrderStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	// Drain control frames until the peer goes away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				delete(s.conns, conn)
				s.mu.Unlock()
				_ = conn.Close()
				return
			}
		}
	}()
}

func (s *Server) handleStubTrade(w http.ResponseWriter, r *http.Request) {
	statusCode, err := strconv.Atoi(r.URL.Query().Get("statusCode"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	raw := json.RawMessage("{}")
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body) > 0 {
		raw = body
	}

	s.mu.Lock()
	s.stub = &tradeStub{statusCode: statusCode, body: raw}
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCapturedTrades(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.CapturedTrades())
}

func (s *Server) handleInject(w http.ResponseWriter, r *http.Request) {
	var stacks sphere.OrderStacks
	if err := json.NewDecoder(r.Body).Decode(&stacks); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.Inject(&stacks)
	w.WriteHeader(http.StatusOK)
}

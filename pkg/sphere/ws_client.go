package sphere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gammazero/deque"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSClientConfig struct {
	// BaseURL is the REST endpoint (auth, trade submission).
	BaseURL string
	// StreamURL is the websocket endpoint for the order event stream.
	StreamURL string

	HTTPTimeoutSeconds int

	// ReconnectMaxSeconds bounds how long a broken stream is redialed
	// before the subscription is dropped. Defaults to 30.
	ReconnectMaxSeconds int
}

// WSClient is the production Client: REST for auth and trade submission, a
// websocket for the order event stream. Inbound batches are buffered through
// an unbounded deque so the socket reader never blocks on matching; a single
// dispatch goroutine delivers them to the callback in arrival order.
type WSClient struct {
	cfg        *WSClientConfig
	httpClient *http.Client

	mu       sync.Mutex
	token    string
	callback OrderEventCallback
	conn     *websocket.Conn
	stopped  bool

	queueMu   sync.Mutex
	queueCond *sync.Cond
	queue     deque.Deque[*OrderStacks]
	draining  bool
}

func NewWSClient(cfg *WSClientConfig) *WSClient {
	timeout := cfg.HTTPTimeoutSeconds
	if timeout == 0 {
		timeout = 10
	}
	c := &WSClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
	c.queueCond = sync.NewCond(&c.queueMu)
	return c
}

func (c *WSClient) Login(ctx context.Context, username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})

	resp, err := c.post(ctx, "/api/auth/login", "", body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	c.mu.Lock()
	c.token = result.Token
	c.mu.Unlock()

	return nil
}

func (c *WSClient) Logout(ctx context.Context) error {
	token, err := c.sessionToken()
	if err != nil {
		return err
	}

	resp, err := c.post(ctx, "/api/auth/logout", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // nolint

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	return nil
}

func (c *WSClient) TradeOrder(ctx context.Context, req *TradeOrderRequest) (*OrderResponse, error) {
	token, err := c.sessionToken()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, "/api/order/trade", token, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", ErrTradeOrderFailed, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var result OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *WSClient) SubscribeOrderEvents(cb OrderEventCallback) error {
	token, err := c.sessionToken()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.callback != nil {
		c.mu.Unlock()
		return ErrAlreadySubscribed
	}
	c.callback = cb
	c.stopped = false
	c.mu.Unlock()

	conn, err := c.dial(token)
	if err != nil {
		c.mu.Lock()
		c.callback = nil
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(token)
	go c.dispatchLoop()

	return nil
}

func (c *WSClient) UnsubscribeOrderEvents() error {
	c.mu.Lock()
	subscribed := c.callback != nil
	c.mu.Unlock()

	if subscribed {
		c.dropSubscription()
	}
	return nil
}

// dropSubscription clears the subscription state after the stream is lost
// for good and wakes the dispatch goroutine so it drains and exits.
func (c *WSClient) dropSubscription() {
	c.mu.Lock()
	c.stopped = true
	c.callback = nil
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}

	c.queueMu.Lock()
	c.draining = true
	c.queueMu.Unlock()
	c.queueCond.Broadcast()
}

func (c *WSClient) sessionToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return "", ErrNotLoggedIn
	}
	return c.token, nil
}

func (c *WSClient) post(ctx context.Context, path, token string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.httpClient.Do(req)
}

func (c *WSClient) dial(token string) (*websocket.Conn, error) {
	url := c.cfg.StreamURL + "/ws/orders?token=" + token

	maxElapsed := c.cfg.ReconnectMaxSeconds
	if maxElapsed == 0 {
		maxElapsed = 30
	}

	var conn *websocket.Conn
	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = time.Duration(maxElapsed) * time.Second
	err := backoff.Retry(func() error {
		var err error
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			zap.S().Warnf("dial order stream fail: %v", err)
		}
		return err
	}, boff)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (c *WSClient) readLoop(token string) {
	for {
		c.mu.Lock()
		conn, stopped := c.conn, c.stopped
		c.mu.Unlock()
		if stopped || conn == nil {
			return
		}

		_, payload, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			stopped = c.stopped
			c.mu.Unlock()
			if stopped {
				return
			}

			zap.S().Warnf("order stream read fail, reconnecting: %v", err)
			next, dialErr := c.dial(token)
			if dialErr != nil {
				// The subscription is dropped so the dispatch goroutine
				// exits and a fresh SubscribeOrderEvents is possible.
				zap.S().Errorf("order stream reconnect fail, dropping subscription: %v", dialErr)
				c.dropSubscription()
				return
			}
			c.mu.Lock()
			c.conn = next
			c.mu.Unlock()
			continue
		}

		var stacks OrderStacks
		if err := json.Unmarshal(payload, &stacks); err != nil {
			zap.S().Warnf("order stream payload unmarshal fail: %v", err)
			continue
		}

		c.queueMu.Lock()
		c.queue.PushBack(&stacks)
		c.queueMu.Unlock()
		c.queueCond.Signal()
	}
}

func (c *WSClient) dispatchLoop() {
	for {
		c.queueMu.Lock()
		for c.queue.Len() == 0 && !c.draining {
			c.queueCond.Wait()
		}
		if c.draining && c.queue.Len() == 0 {
			c.draining = false
			c.queueMu.Unlock()
			return
		}
		stacks := c.queue.PopFront()
		c.queueMu.Unlock()

		c.mu.Lock()
		cb := c.callback
		c.mu.Unlock()
		if cb != nil {
			cb(stacks)
		}
	}
}

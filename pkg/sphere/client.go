package sphere

import (
	"context"
	"errors"
)

var (
	// ErrLoginFailed means the backend rejected the supplied credentials.
	ErrLoginFailed = errors.New("login failed")
	// ErrNotLoggedIn means an operation requiring a session was attempted
	// without one.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrTradeOrderFailed is the expected-failure category for trade
	// submissions: the backend accepted the request but declined to execute
	// it (invalid counterparty, order gone, rejection).
	ErrTradeOrderFailed = errors.New("trade order failed")
	// ErrAlreadySubscribed is returned when a second order event callback is
	// registered without unsubscribing first.
	ErrAlreadySubscribed = errors.New("already subscribed to order events")
)

// OrderEventCallback receives one batch of order stacks per invocation.
// Batches are delivered sequentially from a single dispatch goroutine.
type OrderEventCallback func(*OrderStacks)

// Client is the trading client collaborator. It owns authentication, session
// lifecycle, subscription management and transport; consumers only see DTOs.
type Client interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error

	SubscribeOrderEvents(cb OrderEventCallback) error
	UnsubscribeOrderEvents() error

	// TradeOrder synchronously submits a trade against a real order.
	// Expected rejections wrap ErrTradeOrderFailed.
	TradeOrder(ctx context.Context, req *TradeOrderRequest) (*OrderResponse, error)
}

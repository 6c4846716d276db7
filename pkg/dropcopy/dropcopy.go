// Package dropcopy exposes executed ghost fills as a FIX 4.4 drop-copy feed:
// an acceptor that sends an ExecutionReport for every fill to each logged-on
// session.
package dropcopy

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
	"go.uber.org/zap"

	"github.com/joripage/ghost-trader/pkg/ghost"
)

type Server struct {
	configFilepath string

	app      *Application
	acceptor *quickfix.Acceptor
}

func NewServer(configFilepath string) *Server {
	return &Server{configFilepath: configFilepath}
}

func (s *Server) Start() error {
	cfg, err := os.Open(s.configFilepath)
	if err != nil {
		return fmt.Errorf("error opening %v, %v", s.configFilepath, err)
	}
	defer cfg.Close() // nolint

	stringData, readErr := io.ReadAll(cfg)
	if readErr != nil {
		return fmt.Errorf("error reading cfg: %s,", readErr)
	}

	appSettings, err := quickfix.ParseSettings(bytes.NewReader(stringData))
	if err != nil {
		return fmt.Errorf("error reading cfg: %s,", err)
	}

	s.app = newApplication()

	logFactory, _ := quickfix.NewFileLogFactory(appSettings)
	acceptor, err := quickfix.NewAcceptor(s.app, quickfix.NewMemoryStoreFactory(), appSettings, logFactory)
	if err != nil {
		return fmt.Errorf("unable to create acceptor: %s", err)
	}

	if err := acceptor.Start(); err != nil {
		return fmt.Errorf("unable to start FIX acceptor: %s", err)
	}
	s.acceptor = acceptor

	return nil
}

func (s *Server) Stop() {
	if s.acceptor != nil {
		s.acceptor.Stop()
	}
}

// Publish sends an ExecutionReport for the fill to every logged-on session.
// Send failures are logged per session; the fill itself is already done.
func (s *Server) Publish(fill *ghost.Fill) {
	if s.app == nil {
		return
	}

	s.app.sessions.Range(func(k, _ any) bool {
		sessionID := k.(quickfix.SessionID)
		msg := executionReportFromFill(fill)
		if err := quickfix.SendToTarget(msg, sessionID); err != nil {
			zap.S().Errorw("drop copy send failed",
				"session", sessionID.String(), "real_order_id", fill.RealOrderID, "error", err)
		}
		return true
	})
}

// Application implements quickfix.Application. The drop copy is send-only:
// it routes nothing inbound and only tracks which sessions are logged on.
type Application struct {
	sessions sync.Map
}

func newApplication() *Application {
	return &Application{}
}

// OnCreate implemented as part of Application interface
func (a *Application) OnCreate(sessionID quickfix.SessionID) {}

// OnLogon implemented as part of Application interface
func (a *Application) OnLogon(sessionID quickfix.SessionID) {
	a.sessions.Store(sessionID, struct{}{})
}

// OnLogout implemented as part of Application interface
func (a *Application) OnLogout(sessionID quickfix.SessionID) {
	a.sessions.Delete(sessionID)
}

// ToAdmin implemented as part of Application interface
func (a *Application) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}

// ToApp implemented as part of Application interface
func (a *Application) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}

// FromAdmin implemented as part of Application interface
func (a *Application) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	if msgType, err := msg.Header.GetString(tag.MsgType); err == nil {
		zap.S().Debugw("drop copy admin message", "session", sessionID.String(), "msg_type", msgType)
	}
	return nil
}

// FromApp implemented as part of Application interface; inbound application
// messages are not expected on a drop-copy feed.
func (a *Application) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return quickfix.UnsupportedMessageType()
}

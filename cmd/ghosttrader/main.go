package main

import (
	"bufio"
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/joripage/ghost-trader/config"
	"github.com/joripage/ghost-trader/pkg/dropcopy"
	"github.com/joripage/ghost-trader/pkg/ghost"
	postgres_wrapper "github.com/joripage/ghost-trader/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/ghost-trader/pkg/infra/redis"
	"github.com/joripage/ghost-trader/pkg/journal"
	"github.com/joripage/ghost-trader/pkg/logging"
	"github.com/joripage/ghost-trader/pkg/sphere"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "./config/config.yml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		zap.S().Fatalf("load config error: %v", err)
	}

	logger, err := logging.Init(cfg.LogLevel, cfg.Development)
	if err != nil {
		zap.S().Fatalf("init logging error: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	go func() {
		zap.S().Info(http.ListenAndServe("localhost:6060", nil))
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Sphere == nil {
		zap.S().Fatal("sphere config is required")
	}

	client := sphere.NewWSClient(&sphere.WSClientConfig{
		BaseURL:   cfg.Sphere.BaseURL,
		StreamURL: cfg.Sphere.StreamURL,
	})

	reader := bufio.NewReader(os.Stdin)
	username := cfg.Sphere.Username
	if username == "" {
		username = ask(reader, "Username: ")
	}
	password := cfg.Sphere.Password
	if password == "" {
		password = ask(reader, "Password: ")
	}

	if err := client.Login(ctx, username, password); err != nil {
		zap.S().Fatalf("login error: %v", err)
	}
	zap.S().Infof("logged in to %s as %s", cfg.Sphere.BaseURL, username)

	trader := ghost.NewTrader(ghost.NewSphereExecutor(client))
	promptForGhostOrders(reader, trader)

	mem := journal.NewInMemoryJournal()
	sinks := []journal.Journal{mem}

	if cfg.JournalDB != nil {
		db, err := postgres_wrapper.InitPostgresWithBackoff(cfg.JournalDB)
		if err != nil {
			zap.S().Fatalf("init journal db error: %v", err)
		}
		sinks = append(sinks, journal.NewSQLJournal(db))
	}
	if cfg.Redis != nil {
		rdb, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Fatalf("init redis error: %v", err)
		}
		sinks = append(sinks, journal.NewRedisJournal(rdb, cfg.ServiceName))
	}
	if cfg.Kafka != nil {
		kj := journal.NewKafkaJournal(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kj.Close() //nolint:errcheck
		sinks = append(sinks, kj)
	}
	jr := journal.NewMulti(sinks...)

	var dc *dropcopy.Server
	if cfg.DropCopy != nil && cfg.DropCopy.Enabled {
		dc = dropcopy.NewServer(cfg.DropCopy.ConfigFilepath)
		if err := dc.Start(); err != nil {
			zap.S().Fatalf("start drop copy error: %v", err)
		}
		defer dc.Stop()
	}

	trader.RegisterFillCallback(func(fill *ghost.Fill) {
		if err := jr.Record(context.Background(), journal.NewGhostTrade(fill)); err != nil {
			zap.S().Errorw("record fill error", "err", err, "ghost_order_id", fill.GhostOrderID)
		}
		if dc != nil {
			dc.Publish(fill)
		}
	})

	verbose := cfg.LogLevel == "debug"
	onEvent := func(stacks *sphere.OrderStacks) {
		if verbose && stacks != nil {
			zap.S().Debugf("order event %s\n%s", stacks.EventType, sphere.FormatOrderStacks(stacks.Body))
		}
		trader.OnOrderEvent(stacks)
	}

	if err := client.SubscribeOrderEvents(onEvent); err != nil {
		zap.S().Fatalf("subscribe order events error: %v", err)
	}
	zap.S().Info("listening for order events, press Ctrl+C to stop")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	zap.S().Info("shutting down")
	if err := client.UnsubscribeOrderEvents(); err != nil {
		zap.S().Warnf("unsubscribe error: %v", err)
	}
	if err := client.Logout(context.Background()); err != nil {
		zap.S().Warnf("logout error: %v", err)
	}

	zap.S().Infof("session executed %d ghost trades", len(mem.Trades()))
	zap.S().Infof("remaining ghost orders:\n%s", trader.Summary())
}

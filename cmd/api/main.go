package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vt-tradesim/internal/accounts"
	"vt-tradesim/internal/assets"
	"vt-tradesim/internal/config"
	"vt-tradesim/internal/copytrading"
	"vt-tradesim/internal/db"
	"vt-tradesim/internal/education"
	"vt-tradesim/internal/httpserver"
	"vt-tradesim/internal/marketdata"
	"vt-tradesim/internal/signals"
	"vt-tradesim/internal/subscriptions"
	"vt-tradesim/internal/traders"
	"vt-tradesim/internal/trading"
	"vt-tradesim/internal/wallets"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}

	startingBalance, err := decimal.NewFromString(cfg.StartingBalance)
	if err != nil {
		log.Fatal(err)
	}

	bus := marketdata.NewBus()
	accountSvc := accounts.NewService(pool, logger, startingBalance, cfg.DefaultCurrency)
	assetSvc := assets.NewService(pool, bus)
	traderSvc := traders.NewService(pool)
	signalSvc := signals.NewService(pool)
	tradeStore := trading.NewStore()
	tradeSvc := trading.NewService(pool, tradeStore, logger)
	subscriptionSvc := subscriptions.NewService(pool, logger)
	copySvc := copytrading.NewService(pool, tradeStore, logger)
	walletSvc := wallets.NewService(pool, logger)
	educationSvc := education.NewService(pool)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		AccountsHandler:     accounts.NewHandler(accountSvc),
		AssetsHandler:       assets.NewHandler(assetSvc),
		TradersHandler:      traders.NewHandler(traderSvc),
		SignalsHandler:      signals.NewHandler(signalSvc),
		TradingHandler:      trading.NewHandler(tradeSvc),
		SubscriptionHandler: subscriptions.NewHandler(subscriptionSvc),
		CopyTradeHandler:    copytrading.NewHandler(copySvc),
		WalletsHandler:      wallets.NewHandler(walletSvc),
		EducationHandler:    education.NewHandler(educationSvc),
		PriceWSHandler:      marketdata.NewPriceWS(bus, cfg.WebSocketOrigin),
		Logger:              logger,
		RateLimitRPS:        cfg.RateLimitRPS,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/charu0811/dashboard/internal/config"
	"github.com/charu0811/dashboard/internal/logx"
	"github.com/charu0811/dashboard/internal/market"
	"github.com/charu0811/dashboard/internal/monitoring"
	"github.com/charu0811/dashboard/internal/store"
	"github.com/charu0811/dashboard/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("configs/app.yaml")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := logx.Init(cfg.Log.Level, cfg.Log.Encoding, cfg.Log.File); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() {
		_ = logx.Sync()
	}()

	st, err := store.Open(cfg.Store.Sqlite.Path)
	if err != nil {
		logx.Fatal("store error", zap.Error(err))
	}
	defer func() {
		if err := st.Close(); err != nil {
			logx.Error("store close error", zap.Error(err))
		}
	}()

	svc := market.NewService(
		time.Duration(cfg.Market.CacheTTLMs)*time.Millisecond,
		st,
		market.NewWorkbookSource(cfg.Market.Workbook, cfg.Market.Sheet),
		market.NewCSVSource(cfg.Market.FallbackCSV),
	)

	go func() {
		logx.Info("monitoring server starting", zap.Int("port", cfg.Monitoring.Port))
		if err := monitoring.Serve(cfg.Monitoring.Port); err != nil {
			logx.Error("monitoring server stopped", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	h := server.Default(server.WithHostPorts(addr))
	web.Register(h.Engine, svc, st)

	logx.Info("dashboard starting",
		zap.String("addr", addr),
		zap.String("workbook", cfg.Market.Workbook),
		zap.String("sheet", cfg.Market.Sheet),
		zap.String("fallback_csv", cfg.Market.FallbackCSV),
		zap.Int("cache_ttl_ms", cfg.Market.CacheTTLMs),
	)
	if err := h.Run(); err != nil {
		logx.Fatal("server run error", zap.Error(err))
	}
}

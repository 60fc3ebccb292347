package main

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/logger"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/metrics"
)

func rp(to string) *httputil.ReverseProxy {
	u, _ := url.Parse(to)
	return httputil.NewSingleHostReverseProxy(u)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	markets := rp(envOr("MARKET_URL", "http://localhost:8080"))
	wallet := rp(envOr("WALLET_URL", "http://localhost:8082"))
	bets := rp(envOr("BET_URL", "http://localhost:8083"))
	feed := rp(envOr("FEED_URL", "http://localhost:8084"))

	mux := http.NewServeMux()
	mux.Handle("/api/markets/", http.StripPrefix("/api/markets", markets))
	mux.Handle("/api/wallet/", http.StripPrefix("/api/wallet", wallet))
	mux.Handle("/api/bets/", http.StripPrefix("/api/bets", bets))
	mux.Handle("/api/activity/", http.StripPrefix("/api/activity", feed))

	metrics.StartMetricsServer(cfg.MetricsPort, nil)

	addr := ":" + cfg.HTTPPort
	log.Info("api-gateway listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil && err != http.ErrServerClosed {
		log.Fatal("gateway failed", zap.Error(err))
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

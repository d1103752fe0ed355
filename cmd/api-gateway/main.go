package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"

	"github.com/radieske/betledger/internal/shared/config"
	"github.com/radieske/betledger/internal/shared/logger"
	"github.com/radieske/betledger/internal/shared/metrics"
)

func rp(to string) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(to)
	if err != nil {
		return nil, fmt.Errorf("parse target %q: %w", to, err)
	}
	return httputil.NewSingleHostReverseProxy(u), nil
}

// routes monta o mux do gateway a partir das URLs dos serviços
func routes(trackerURL, streamURL string) (http.Handler, error) {
	tracker, err := rp(trackerURL)
	if err != nil {
		return nil, err
	}
	stream, err := rp(streamURL)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// tracker (ex.: /api/tracker/v1/stats -> tracker-service /v1/stats)
	mux.Handle("/api/tracker/", http.StripPrefix("/api/tracker", tracker))

	// stream (ex.: /api/stream/ws -> dashboard-stream /ws)
	mux.Handle("/api/stream/", http.StripPrefix("/api/stream", stream))

	return withCORS(mux), nil
}

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "api-gateway"
	}
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	h, err := routes(cfg.TrackerURL, cfg.StreamURL)
	if err != nil {
		log.Fatal("gateway routes", zap.Error(err))
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(context.Context) error { return nil })

	addr := ":" + cfg.HTTPPort
	log.Info("api-gateway listening", zap.String("addr", addr), zap.String("tracker", cfg.TrackerURL), zap.String("stream", cfg.StreamURL))
	if err := http.ListenAndServe(addr, h); err != nil && err != http.ErrServerClosed {
		log.Fatal("gateway failed", zap.Error(err))
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

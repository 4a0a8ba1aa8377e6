// Command devserver runs the engine behind the HTTP gateway with an
// in-memory store, for local development against real clients.
package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/app"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/config"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/gateway"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/ports"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/store"
)

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	opts := []app.Option{}
	if cfg.DatabaseURL != "" {
		sink, err := store.NewPostgresSink(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres sink", zap.Error(err))
		}
		defer sink.Close()
		opts = append(opts, app.WithSinks(sink))
		log.Info("snapshot mirroring enabled", zap.String("sink", sink.Name()))
	}

	var matches ports.MatchStore = store.NewMemory()
	svc := app.NewService(matches, cfg, log, opts...)

	log.Info("devserver listening", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, gateway.Router(svc, log)); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

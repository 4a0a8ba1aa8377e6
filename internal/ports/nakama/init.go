// Package nakama adapts the match engine to the Nakama runtime: RPC
// registration, wallet settlement, and storage-object snapshot mirroring.
package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
	"go.uber.org/zap"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/app"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/config"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/store"
)

// InitModule wires the engine and registers its RPC surface with Nakama.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		zlog = zap.NewNop()
	}

	svc := app.NewService(store.NewMemory(), cfg, zlog,
		app.WithSinks(NewStorageSink(nk)),
		app.WithEconomy(NewEconomyAdapter(nk)),
	)

	if err := registerRPCs(initializer, svc); err != nil {
		return err
	}

	logger.Info("hearts-pro module loaded.")
	return nil
}

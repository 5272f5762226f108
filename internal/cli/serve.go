package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/t0mdavid-m/seqviz/internal/server"
	"github.com/t0mdavid-m/seqviz/pkg/config"
	"github.com/t0mdavid-m/seqviz/pkg/store"
)

// storeCloseTimeout bounds the archive store shutdown.
const storeCloseTimeout = 5 * time.Second

// newServeCmd creates the serve command running the HTTP layout API.
func newServeCmd(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Serve exposes the layout pipeline over HTTP. Layouts are computed
once and archived under an ID for later retrieval and re-rendering.
Archived layouts live in memory unless a MongoDB URI is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = cfg.Server.Addr
			}

			st, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
				defer cancel()
				if err := st.Close(closeCtx); err != nil {
					logger.Warn("store close failed", "error", err)
				}
			}()

			runner := newRunner(ctx, cfg)
			defer runner.Cache.Close()

			return server.New(runner, st, logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, e.g. :8080)")
	return cmd
}

// newStore selects the archive backend: MongoDB when configured, otherwise
// an in-memory store that lives as long as the process.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Server.MongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.Server.MongoURI})
}

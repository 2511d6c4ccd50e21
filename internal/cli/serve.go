package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	router "listing/internal/http"
	"listing/internal/utils"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset once and serve the listing API",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := opts.env
			if addr != "" {
				env.AppAddr = addr
			}
			if env.GinMode != "" {
				gin.SetMode(env.GinMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := opts.openStore(ctx)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              env.AppAddr,
				Handler:           router.NewRouter(env, st),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       20 * time.Second,
				WriteTimeout:      20 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				utils.LogEvent("", "server", "listen", "server listening", zap.String("addr", env.AppAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				utils.LogEvent("", "server", "shutdown", "shutting down server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}
			utils.LogEvent("", "server", "stopped", "server stopped cleanly")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address; defaults to APP_ADDR")
	return cmd
}

// Package cli wires the listing commands: serve the HTTP API or run one
// query, facet or export against a data source from the terminal.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	intconfig "listing/internal/config"
	"listing/internal/query"
	"listing/internal/store"
	"listing/internal/utils"
)

type rootOptions struct {
	source   string
	logLevel string
	envFile  string

	env intconfig.Env
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Browse, filter, sort and page provider records",
		Long: `listing loads a provider dataset once (JSON file, HTTP URL, s3://bucket/key
or MySQL table) and answers filtered, sorted and paginated views of it,
either over HTTP (serve) or directly on the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = utils.L().Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.source, "source", "", "data source (path, http(s) URL, s3://bucket/key, mysql://dsn); defaults to DATA_SOURCE")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load before reading the environment")

	cmd.AddCommand(
		newServeCmd(opts),
		newQueryCmd(opts),
		newFacetsCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

func (o *rootOptions) init() error {
	var err error
	if o.envFile != "" {
		err = intconfig.LoadDotEnv(o.envFile)
	} else {
		err = intconfig.LoadDotEnv()
	}
	if err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	o.env = intconfig.LoadEnv()
	if o.source != "" {
		o.env.DataSource = o.source
	}
	if o.logLevel != "" {
		o.env.LogLevel = o.logLevel
	}
	if _, err := utils.InitLogger(o.env.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (o *rootOptions) limits() query.Limits {
	return query.Limits{
		DefaultPageSize: o.env.DefaultPageSize,
		MaxPageSize:     o.env.MaxPageSize,
	}
}

// openStore loads the dataset once. Connections opened for loading are
// released before returning.
func (o *rootOptions) openStore(ctx context.Context) (*store.Store, error) {
	if o.env.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.env.LoadTimeout)
		defer cancel()
	}
	defer intconfig.CloseDB()

	src, err := store.OpenSource(ctx, o.env.DataSource, store.Options{
		MySQLDSN:   o.env.MySQLDSN,
		MySQLTable: o.env.MySQLTable,
		AWSRegion:  o.env.AWSRegion,
	})
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, src)
}

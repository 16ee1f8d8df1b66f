package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/config"
	"finitefield.org/showcase-web/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "showcase",
		Short:         "Affiliate product showcase",
		Long:          `showcase serves a storefront of affiliate products enriched from a static manifest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file with SHOWCASE_* overrides (default .env)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newCatalogCmd(opts))
	root.AddCommand(newAskCmd(opts))
	return root
}

// bootstrap loads configuration and builds the process logger.
func (o *rootOptions) bootstrap() (config.Config, *zap.Logger, error) {
	var cfgOpts []config.Option
	if o.envFile != "" {
		cfgOpts = append(cfgOpts, config.WithEnvFile(o.envFile))
	}
	cfg, err := config.Load(cfgOpts...)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := observability.NewLogger()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger.With(zap.String("env", cfg.Server.Environment)), nil
}

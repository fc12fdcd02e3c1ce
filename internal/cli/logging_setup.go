package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/pybites-search/internal/config"
	"github.com/rshade/pybites-search/internal/logging"
)

// setupLogging configures logging from the resolved config and the --debug flag,
// and stores the logger and a run ID in the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
	}

	ctx := cmd.Context()
	runID := logging.GetOrGenerateRunID(ctx)
	ctx = logging.ContextWithRunID(ctx, runID)

	base := logging.New(cmd.ErrOrStderr(), loggingCfg.ToLoggingConfig()).
		With().Str("run_id", runID).Logger()
	logger = logging.ComponentLogger(base, "cli")

	ctx = base.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).
		Str("command", cmd.Name()).
		Str("cache_path", cfg.CachePath).
		Bool("cache_enabled", cfg.CacheEnabled).
		Int("ttl_seconds", cfg.TTLSeconds).
		Str("endpoint", cfg.Endpoint).
		Strs("config_sources", cfg.Sources).
		Msg("command started")
}

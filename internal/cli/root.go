package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pybites-search/internal/catalog"
	"github.com/rshade/pybites-search/internal/config"
	"github.com/rshade/pybites-search/internal/engine"
	"github.com/rshade/pybites-search/internal/engine/cache"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Runtime holds the process-level collaborators the command depends on.
// Tests replace them to avoid touching the real home directory or network.
type Runtime struct {
	// LookupEnv reads environment variables (default os.LookupEnv).
	LookupEnv config.LookupFunc

	// HomeDir resolves the user's home directory (default os.UserHomeDir).
	HomeDir func() (string, error)

	// NewSource builds the network collaborator (default catalog.NewClient).
	NewSource func(cfg *config.Config, userAgent string) engine.ItemSource

	// IsTerminal reports whether w is an interactive terminal (default: x/term check on *os.File).
	IsTerminal func(w io.Writer) bool
}

// searchFlags holds the values bound to the command's flags.
type searchFlags struct {
	contentType string
	titleOnly   bool
	cacheTTL    string
	output      string
	noColor     bool
	cacheInfo   bool
}

// NewRootCmd creates the pybites-search command with the real environment.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithRuntime(ver, Runtime{})
}

// NewRootCmdWithRuntime creates the root command with explicit collaborators for testability.
func NewRootCmdWithRuntime(ver string, rt Runtime) *cobra.Command {
	rt = rt.withDefaults()

	var (
		flags searchFlags
		cfg   *config.Config
	)

	cmd := &cobra.Command{
		Use:     "pybites-search <term>... [flags]",
		Short:   "Search Pybites articles, bites, podcasts, videos and tips",
		Long:    longDescription,
		Version: ver,
		Example: rootCmdExample,
		// Usage is printed by hand for a missing term; cobra would send it to stdout.
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.cacheInfo || len(args) > 0 {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
			return &engine.InputError{Err: engine.ErrNoSearchTerm}
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := config.Resolve(rt.LookupEnv, rt.HomeDir)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("cache-ttl") {
				ttl, err := cache.ParseTTL(flags.cacheTTL)
				if err != nil {
					return &engine.InputError{Err: fmt.Errorf("invalid --cache-ttl: %w", err)}
				}
				resolved = resolved.WithTTL(ttl)
			}
			cfg = resolved

			setupLogging(cmd, cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.output)
			if err != nil {
				return err
			}

			store := openStore(cmd.Context(), cfg)
			if flags.cacheInfo {
				return writeCacheInfo(cmd.OutOrStdout(), cfg, store)
			}

			color := !flags.noColor && format == OutputText && rt.IsTerminal(cmd.OutOrStdout())
			source := rt.NewSource(cfg, "pybites-search/"+ver)
			return runSearch(cmd.Context(), cmd.OutOrStdout(), searchRequest{
				terms:       args,
				contentType: flags.contentType,
				titleOnly:   flags.titleOnly,
				format:      format,
				color:       color,
				endpoint:    cfg.Endpoint,
				ttlSeconds:  cfg.TTLSeconds,
			}, engine.NewFetcher(store, source))
		},
	}

	cmd.Flags().StringVarP(&flags.contentType, "content-type", "c", "",
		"restrict results to one content type: "+catalog.ValidContentTypes())
	cmd.Flags().BoolVarP(&flags.titleOnly, "title-only", "t", false, "match the search term against titles only")
	cmd.Flags().StringVar(&flags.cacheTTL, "cache-ttl", "",
		"cache TTL in seconds or as a duration like 12h, overriding config file and "+cache.EnvTTLSeconds+
			" (default: config or "+strconv.Itoa(cache.DefaultTTLSeconds)+")")
	cmd.Flags().StringVarP(&flags.output, "output", "o", OutputText, "output format: text, json or ndjson")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&flags.cacheInfo, "cache-info", false, "show the cache file status and exit")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	return cmd
}

func (rt Runtime) withDefaults() Runtime {
	if rt.LookupEnv == nil {
		rt.LookupEnv = os.LookupEnv
	}
	if rt.HomeDir == nil {
		rt.HomeDir = os.UserHomeDir
	}
	if rt.NewSource == nil {
		rt.NewSource = func(cfg *config.Config, userAgent string) engine.ItemSource {
			return catalog.NewClient(cfg.Timeout, userAgent)
		}
	}
	if rt.IsTerminal == nil {
		rt.IsTerminal = isTerminal
	}
	return rt
}

// isTerminal checks if the given writer is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// openStore returns the snapshot store selected by cfg.
func openStore(ctx context.Context, cfg *config.Config) cache.Store {
	if !cfg.CacheEnabled {
		return cache.DisabledStore{}
	}
	store, err := cache.NewFileStore(cfg.CachePath)
	if err != nil {
		logger.Debug().Ctx(ctx).Err(err).Msg("cache unavailable, continuing without it")
		return cache.DisabledStore{}
	}
	return store
}

func parseOutputFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case OutputText, OutputJSON, OutputNDJSON:
		return f, nil
	default:
		return "", &engine.InputError{
			Err: fmt.Errorf("invalid output format %q, valid options are: text, json, ndjson", s),
		}
	}
}

const longDescription = `Search the Pybites content catalog: articles, bites (coding exercises),
podcasts, videos and tips.

All terms must appear, in the given order, in the title or summary of an item.
Matching is case-insensitive and terms are taken literally.

The catalog is cached in ~/.pybites-search-cache.json and reused while it is
younger than the cache TTL (default 1 day, see --cache-ttl and ` + cache.EnvTTLSeconds + `).`

const rootCmdExample = `  # Search everything for "decorators"
  pybites-search decorators

  # Only bites, shorthand or full name
  pybites-search -c b generators
  pybites-search --content-type bite generators

  # Several terms in order: "fastapi" followed later by "testing"
  pybites-search fastapi testing

  # Ignore summaries
  pybites-search --title-only regex

  # Machine-readable output
  pybites-search -o json django

  # Inspect the local cache
  pybites-search --cache-info`

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"

	"github.com/loopwork-ai/mcpcall/internal"
	"github.com/loopwork-ai/mcpcall/internal/config"
	"github.com/loopwork-ai/mcpcall/mcp"
)

var rootCmd = &cobra.Command{
	Use:   "mcpcall",
	Short: "A command line client for MCP servers over HTTP",
	Long: `mcpcall talks JSON-RPC 2.0 over HTTP POST to a Model Context Protocol
server. It waits for the server to become ready, then issues initialize,
tools/list, or tools/call requests and prints the results.

The server URL and bearer token can be given as flags, through the
MCP_URL and MCP_TOKEN environment variables, or in a YAML config file
(default: <user config dir>/mcpcall/config.yaml).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagURL     string
	flagToken   string
	flagTimeout time.Duration
	flagConfig  string
	verbose     bool

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", fmt.Sprintf("MCP server URL (default %s)", config.DefaultURL))
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token for auth (or set MCP_TOKEN; op:// references are resolved via the 1Password CLI)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, fmt.Sprintf("HTTP request timeout (default %s)", config.DefaultTimeout))
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)", version, commit, date)

	rootCmd.AddCommand(initCmd, listCmd, analyzeCmd, callCmd)
}

func newLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newClient assembles an mcp.Client from flags, environment, and config
// file, in that order of precedence.
func newClient(ctx context.Context, logger *slog.Logger) (*mcp.Client, error) {
	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, err
	}

	url := cfg.URL
	if flagURL != "" {
		url = flagURL
	}
	token := cfg.Token
	if flagToken != "" {
		token = flagToken
	}
	timeout := cfg.Timeout
	if flagTimeout > 0 {
		timeout = flagTimeout
	}

	token, isSecret, err := internal.ResolveSecretReference(ctx, token)
	if err != nil {
		return nil, err
	}
	if isSecret {
		logger.Debug("resolved bearer token from secret reference")
	}

	// Retries are pinned off: the readiness poller owns the retry
	// policy, and normal calls must stay single-flight.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = logger
	retryClient.HTTPClient.Transport = &internal.HeaderTransport{
		Base: retryClient.HTTPClient.Transport,
		Headers: http.Header{
			"User-Agent": []string{"mcpcall/" + version},
		},
	}

	opts := []mcp.ClientOption{
		mcp.WithHTTPClient(retryClient.StandardClient()),
		mcp.WithTimeout(timeout),
		mcp.WithLogger(logger),
	}
	if token != "" {
		opts = append(opts, mcp.WithAuthToken(token))
	}

	return mcp.NewClient(url, opts...), nil
}

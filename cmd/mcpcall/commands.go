package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/loopwork-ai/mcpcall/mcp"
)

// errInvalidParams flags unusable --params input, mapped to its own
// exit code so scripts can tell it apart from server-side failures.
var errInvalidParams = errors.New("invalid JSON params")

// analyzeConcurrency bounds the fan-out when analyzing multiple files
const analyzeConcurrency = 4

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Call initialize (handshake) and print the server identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		client, err := newClient(cmd.Context(), logger)
		if err != nil {
			return err
		}

		if err := client.WaitForReady(cmd.Context()); err != nil {
			return err
		}

		result, err := client.Initialize(cmd.Context())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		client, err := newClient(cmd.Context(), logger)
		if err != nil {
			return err
		}

		if err := client.WaitForReady(cmd.Context()); err != nil {
			return err
		}

		result, err := client.ListTools(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Tools) == 0 {
			fmt.Fprintln(out, "No tools available.")
			return nil
		}

		fmt.Fprintln(out, "Available tools:")
		for _, tool := range result.Tools {
			fmt.Fprintf(out, " - %s: %s\n", tool.Name, tool.Title)
			if tool.Description != "" {
				fmt.Fprintf(out, "    %s\n", tool.Description)
			}
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Call the built-in 'analyze' tool for each file path",
	Long: `Calls the 'analyze' tool once per file path. The server must be able
to read the given paths. Multiple files are analyzed concurrently, one
tools/call per file, and results are printed in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		client, err := newClient(cmd.Context(), logger)
		if err != nil {
			return err
		}

		if err := client.WaitForReady(cmd.Context()); err != nil {
			return err
		}

		results := make([]*mcp.ToolResult, len(args))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(analyzeConcurrency)
		for i, file := range args {
			g.Go(func() error {
				logger.Debug("calling analyze", "file", file)
				result, err := client.CallTool(ctx, "analyze", map[string]interface{}{
					"file_path": file,
				})
				if err != nil {
					return fmt.Errorf("analyze %s: %w", file, err)
				}
				results[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, result := range results {
			if len(args) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", args[i])
			}
			renderToolResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
		}
		return nil
	},
}

var callCmd = &cobra.Command{
	Use:   "call <name>",
	Short: "Call an arbitrary tool by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arguments map[string]interface{}
		if callParams != "" {
			if err := json.Unmarshal([]byte(callParams), &arguments); err != nil {
				return fmt.Errorf("%w: %v", errInvalidParams, err)
			}
		}

		logger := newLogger()
		client, err := newClient(cmd.Context(), logger)
		if err != nil {
			return err
		}

		if err := client.WaitForReady(cmd.Context()); err != nil {
			return err
		}

		logger.Debug("calling tool", "name", args[0])
		result, err := client.CallTool(cmd.Context(), args[0], arguments)
		if err != nil {
			return err
		}

		renderToolResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
		return nil
	},
}

var callParams string

func init() {
	callCmd.Flags().StringVar(&callParams, "params", "", `JSON object for params.arguments (e.g. '{"file_path":"a.py"}')`)
}

// renderToolResult prints a tool result in both human-friendly and
// structured forms. A tool-level error is flagged on stderr but is not
// an error value: the caller already got a successful result.
func renderToolResult(out, errOut io.Writer, result *mcp.ToolResult) {
	if result.IsError {
		fmt.Fprintln(errOut, "Tool reported an error.")
	}

	for _, part := range result.Content {
		fmt.Fprintln(out, part.String())
	}

	if len(result.StructuredContent) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, result.StructuredContent, "", "  "); err == nil {
			fmt.Fprintln(out, "\nStructured content:")
			fmt.Fprintln(out, buf.String())
		}
	}
}

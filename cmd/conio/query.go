package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/conio/internal/ansi"
)

// queries maps query names to request constructors.
var queries = map[string]func() *ansi.Request{
	"da":     ansi.DeviceAttributes,
	"cursor": ansi.CursorPosition,
	"size":   ansi.TextAreaSize,
}

func queryNames() []string {
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newQueryCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query [" + strings.Join(queryNames(), "|") + "]...",
		Short: "Send terminal queries and print the replies",
		Long: `Send one or more queries to the terminal and print each reply.
With no arguments the primary device attributes are requested.`,
		ValidArgs: queryNames(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"da"}
			}
			return runQuery(cmd.Context(), root, args, cmd.OutOrStdout())
		},
	}
}

type queryResult struct {
	name string
	resp ansi.Response
}

func runQuery(parent context.Context, root *rootOptions, names []string, out io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}
	s, err := root.newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(parent)
	defer cancel()

	loop := s.newLoop()
	if err := loop.Start(ctx); err != nil {
		return err
	}

	results := make([]queryResult, 0, len(names))
	for _, name := range names {
		resp, _ := loop.Send(ctx, queries[name]())
		results = append(results, queryResult{name: name, resp: resp})
	}
	if err := loop.Stop(); err != nil {
		return err
	}

	// Printed after Stop so the terminal is back in cooked mode.
	for _, r := range results {
		fmt.Fprintln(out, formatResponse(r.name, r.resp))
	}
	return nil
}

func formatResponse(name string, resp ansi.Response) string {
	if !resp.OK() {
		return fmt.Sprintf("%-6s error: %v (after %s)", name, resp.Err, resp.Elapsed)
	}
	return fmt.Sprintf("%-6s %q params=%v (after %s)", name, resp.Raw, resp.Params, resp.Elapsed)
}

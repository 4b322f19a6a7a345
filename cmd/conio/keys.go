package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/conio/internal/console"
	"github.com/dshills/conio/internal/input/key"
	"github.com/dshills/conio/internal/input/mouse"
)

func newKeysCmd(root *rootOptions) *cobra.Command {
	var quit string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print key and mouse events until the quit key is pressed",
		Long: `Put the terminal in raw mode and print every decoded key and mouse
event, one per line. Press the quit key (Ctrl+C by default) to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quitKey, err := key.Parse(quit)
			if err != nil {
				return fmt.Errorf("--quit: %w", err)
			}
			return runKeys(cmd.Context(), root, quitKey)
		},
	}
	cmd.Flags().StringVarP(&quit, "quit", "q", "Ctrl+C", "key that ends the session")
	return cmd
}

func runKeys(parent context.Context, root *rootOptions, quitKey key.Event) error {
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

	// Output is raw: lines end in CR LF.
	var loop *console.Loop
	emit := func(line string) {
		_ = loop.Write(line + "\r\n")
	}
	loop = s.newLoop(
		console.WithKeyHandler(func(ev key.Event) {
			if ev.Equals(quitKey) {
				cancel()
				return
			}
			emit(formatKey(ev))
		}),
		console.WithMouseHandler(func(ev mouse.Event) {
			emit("mouse " + ev.String())
		}),
	)

	if err := loop.Start(ctx); err != nil {
		return err
	}
	emit(fmt.Sprintf("reading input from the %s driver, press %s to quit", s.drv.Name(), quitKey))
	err = loop.Wait()
	s.log.Info("session stats: %+v", loop.Stats())
	return err
}

// formatKey renders a key event as: name, kind, decoded fields. Kind is
// "text" for a plain printable character, "chord" when Ctrl, Alt or Meta
// is held (or any modifier on a special key) and "key" otherwise.
func formatKey(ev key.Event) string {
	kind := "key"
	switch {
	case ev.IsModified():
		kind = "chord"
	case ev.IsChar():
		kind = "text"
	}
	return fmt.Sprintf("key   %-12s %-5s %#v", ev, kind, ev)
}

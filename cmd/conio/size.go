package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newSizeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Print the terminal size reported by the driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSize(root, cmd.OutOrStdout())
		},
	}
}

func runSize(root *rootOptions, out io.Writer) error {
	s, err := root.newSession()
	if err != nil {
		return err
	}
	defer s.Close()
	defer s.drv.Dispose()

	w, h, err := s.drv.Size()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%dx%d\n", w, h)
	return nil
}

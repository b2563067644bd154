package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/geniass/price-tracker/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func runTUI(ctx context.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	return tui.Run(ctx, client)
}

package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the health of the Nominatim instance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		status, err := newAPIClient().Status(ctx)
		if err != nil {
			return err
		}

		if status.Status != 0 {
			// Still print the payload so the caller sees the message.
			_ = printJSON(status)
			return eris.Errorf("status: service unhealthy: %s (code %d)", status.Message, status.Status)
		}
		return printJSON(status)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

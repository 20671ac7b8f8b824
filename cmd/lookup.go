package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/nominatim-cli/pkg/nominatim"
)

var (
	lookupDetails bool
	lookupLang    string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <osm-id>...",
	Short: "Resolve OSM objects to places",
	Long:  "Resolve up to 50 OSM objects in one call. Each argument is the type letter followed by the id, e.g. R146656 W104393803 N240109189.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		lq := nominatim.NewLookupQuery()
		if err := lq.OSMIDs(args...); err != nil {
			return err
		}
		if lookupDetails {
			lq.AddressDetails(true)
		}

		lang := lookupLang
		if lang == "" {
			lang = cfg.Nominatim.Language
		}
		if lang != "" {
			if err := lq.Language(lang); err != nil {
				return err
			}
		}

		places, err := newAPIClient().Lookup(ctx, lq)
		if err != nil {
			return err
		}
		return printJSON(places)
	},
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupDetails, "details", false, "include an address breakdown per result")
	lookupCmd.Flags().StringVar(&lookupLang, "lang", "", "accept-language for result names (default from config)")
	rootCmd.AddCommand(lookupCmd)
}

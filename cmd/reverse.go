package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/nominatim-cli/pkg/nominatim"
)

var (
	reverseLat     float64
	reverseLon     float64
	reverseOSM     string
	reverseOSMID   int64
	reverseZoom    int
	reverseDetails bool
	reverseLang    string
)

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Reverse geocode a coordinate pair or OSM object",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rq, err := buildReverseQuery()
		if err != nil {
			return err
		}

		place, err := newAPIClient().Reverse(ctx, rq)
		if err != nil {
			return err
		}
		return printJSON(place)
	},
}

// buildReverseQuery assembles a reverse query from the command flags.
func buildReverseQuery() (*nominatim.ReverseQuery, error) {
	rq := nominatim.NewReverseQuery()

	if reverseOSM != "" {
		if err := rq.OSMID(reverseOSM, reverseOSMID); err != nil {
			return nil, err
		}
	} else {
		rq.Coordinates(reverseLat, reverseLon)
	}

	if reverseZoom >= 0 {
		if err := rq.Zoom(reverseZoom); err != nil {
			return nil, err
		}
	}
	if reverseDetails {
		rq.AddressDetails(true)
	}

	lang := reverseLang
	if lang == "" {
		lang = cfg.Nominatim.Language
	}
	if lang != "" {
		if err := rq.Language(lang); err != nil {
			return nil, err
		}
	}

	return rq, nil
}

func init() {
	reverseCmd.Flags().Float64Var(&reverseLat, "lat", 0, "latitude")
	reverseCmd.Flags().Float64Var(&reverseLon, "lon", 0, "longitude")
	reverseCmd.Flags().StringVar(&reverseOSM, "osm-type", "", "target an OSM object instead: N, W or R")
	reverseCmd.Flags().Int64Var(&reverseOSMID, "osm-id", 0, "OSM object id, with --osm-type")
	reverseCmd.Flags().IntVar(&reverseZoom, "zoom", -1, "address detail level, 0 (country) to 18 (building)")
	reverseCmd.Flags().BoolVar(&reverseDetails, "details", false, "include an address breakdown")
	reverseCmd.Flags().StringVar(&reverseLang, "lang", "", "accept-language for result names (default from config)")
	rootCmd.AddCommand(reverseCmd)
}

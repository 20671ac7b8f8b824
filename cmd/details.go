package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/nominatim-cli/pkg/nominatim"
)

var (
	detailsOSMType string
	detailsOSMID   int64
	detailsPlaceID int64
	detailsClass   string
	detailsAddress bool
)

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Show the indexed record of a single place",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dq, err := buildDetailsQuery()
		if err != nil {
			return err
		}

		details, err := newAPIClient().Details(ctx, dq)
		if err != nil {
			return err
		}
		return printJSON(details)
	},
}

// buildDetailsQuery assembles a details query from the command flags.
func buildDetailsQuery() (*nominatim.DetailsQuery, error) {
	var dq *nominatim.DetailsQuery

	switch {
	case detailsPlaceID != 0:
		dq = nominatim.NewDetailsQueryByPlaceID(detailsPlaceID)
	case detailsOSMType != "":
		var err error
		dq, err = nominatim.NewDetailsQuery(detailsOSMType, detailsOSMID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, eris.New("details: either --place-id or --osm-type with --osm-id is required")
	}

	if detailsClass != "" {
		dq.Class(detailsClass)
	}
	if detailsAddress {
		dq.AddressDetails(true)
	}
	return dq, nil
}

func init() {
	detailsCmd.Flags().StringVar(&detailsOSMType, "osm-type", "", "OSM object type: N, W or R")
	detailsCmd.Flags().Int64Var(&detailsOSMID, "osm-id", 0, "OSM object id, with --osm-type")
	detailsCmd.Flags().Int64Var(&detailsPlaceID, "place-id", 0, "internal place id instead of an OSM object")
	detailsCmd.Flags().StringVar(&detailsClass, "class", "", "disambiguate objects imported with more than one class")
	detailsCmd.Flags().BoolVar(&detailsAddress, "details", false, "include the address hierarchy")
	rootCmd.AddCommand(detailsCmd)
}

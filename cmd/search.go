package main

import (
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nominatim-cli/pkg/nominatim"
)

var (
	searchText         string
	searchStreet       string
	searchCity         string
	searchCounty       string
	searchState        string
	searchCountry      string
	searchPostalCode   string
	searchCountryCodes []string
	searchViewBox      string
	searchBounded      bool
	searchExclude      []int64
	searchLimit        int
	searchDetails      bool
	searchExtraTags    bool
	searchNameDetails  bool
	searchPolygon      string
	searchLang         string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Forward geocode a free-text or structured address query",
	Long: "Search for places by free text (--query) or by structured address parts " +
		"(--street, --city, --state, ...). Use one style per invocation; the service " +
		"ignores the structured parts when --query is set.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sq, err := buildSearchQuery()
		if err != nil {
			return err
		}

		places, err := newAPIClient().Search(ctx, sq)
		if err != nil {
			return err
		}

		zap.L().Debug("search complete", zap.Int("results", len(places)))
		return printJSON(places)
	},
}

// buildSearchQuery assembles a search query from the command flags.
func buildSearchQuery() (*nominatim.SearchQuery, error) {
	sq := nominatim.NewSearchQuery()

	if searchText != "" {
		sq.FreeTextQuery(searchText)
	}
	if searchStreet != "" {
		sq.Street(searchStreet)
	}
	if searchCity != "" {
		sq.City(searchCity)
	}
	if searchCounty != "" {
		sq.County(searchCounty)
	}
	if searchState != "" {
		sq.State(searchState)
	}
	if searchCountry != "" {
		sq.Country(searchCountry)
	}
	if searchPostalCode != "" {
		sq.PostalCode(searchPostalCode)
	}

	for _, code := range searchCountryCodes {
		if err := sq.AddCountryCode(code); err != nil {
			return nil, err
		}
	}

	if searchViewBox != "" {
		parts := strings.Split(searchViewBox, ",")
		if len(parts) != 4 {
			return nil, eris.Errorf("search: viewbox wants left,top,right,bottom, got %q", searchViewBox)
		}
		sq.ViewBox(parts[0], parts[1], parts[2], parts[3])
		if searchBounded {
			sq.Bounded(true)
		}
	}

	if len(searchExclude) > 0 {
		if err := sq.ExcludePlaceIDs(searchExclude...); err != nil {
			return nil, err
		}
	}

	if searchLimit > 0 {
		sq.Limit(searchLimit)
	}
	if searchDetails {
		sq.AddressDetails(true)
	}
	if searchExtraTags {
		sq.ExtraTags(true)
	}
	if searchNameDetails {
		sq.NameDetails(true)
	}

	if searchPolygon != "" {
		if err := sq.Polygon(searchPolygon); err != nil {
			return nil, err
		}
	}

	lang := searchLang
	if lang == "" {
		lang = cfg.Nominatim.Language
	}
	if lang != "" {
		if err := sq.Language(lang); err != nil {
			return nil, err
		}
	}

	return sq, nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchText, "query", "q", "", "free-text query")
	searchCmd.Flags().StringVar(&searchStreet, "street", "", "structured search: street with optional house number")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "structured search: city")
	searchCmd.Flags().StringVar(&searchCounty, "county", "", "structured search: county")
	searchCmd.Flags().StringVar(&searchState, "state", "", "structured search: state")
	searchCmd.Flags().StringVar(&searchCountry, "country", "", "structured search: country")
	searchCmd.Flags().StringVar(&searchPostalCode, "postalcode", "", "structured search: postal code")
	searchCmd.Flags().StringSliceVar(&searchCountryCodes, "countrycodes", nil, "restrict to ISO 3166-1 alpha-2 countries (repeatable)")
	searchCmd.Flags().StringVar(&searchViewBox, "viewbox", "", "preferred area as left,top,right,bottom")
	searchCmd.Flags().BoolVar(&searchBounded, "bounded", false, "restrict results to the viewbox")
	searchCmd.Flags().Int64SliceVar(&searchExclude, "exclude", nil, "place ids to skip (repeatable)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchDetails, "details", false, "include an address breakdown per result")
	searchCmd.Flags().BoolVar(&searchExtraTags, "extratags", false, "include extra OSM tags per result")
	searchCmd.Flags().BoolVar(&searchNameDetails, "namedetails", false, "include the full name list per result")
	searchCmd.Flags().StringVar(&searchPolygon, "polygon", "", "include geometry: geojson, kml, svg or text")
	searchCmd.Flags().StringVar(&searchLang, "lang", "", "accept-language for result names (default from config)")
	rootCmd.AddCommand(searchCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nominatim-cli/internal/config"
	"github.com/sells-group/nominatim-cli/pkg/nominatim"
)

var cfg *config.Config

var (
	flagBaseURL string
	flagFormat  string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "nominatim-cli",
	Short: "Geocode with the OpenStreetMap Nominatim API",
	Long:  "Forward and reverse geocoding, OSM object lookup, place details and server status against any Nominatim instance.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Nominatim instance URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "response format: json, jsonv2 or xml (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log request URLs and response sizes")
}

// newAPIClient builds a client from config, letting persistent flags
// override individual settings.
func newAPIClient() nominatim.Client {
	baseURL := cfg.Nominatim.BaseURL
	if flagBaseURL != "" {
		baseURL = flagBaseURL
	}
	format := cfg.Nominatim.Format
	if flagFormat != "" {
		format = flagFormat
	}

	timeout := time.Duration(cfg.Nominatim.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return nominatim.NewClient(
		nominatim.WithBaseURL(baseURL),
		nominatim.WithFormat(format),
		nominatim.WithUserAgent(cfg.Nominatim.UserAgent),
		nominatim.WithEmail(cfg.Nominatim.Email),
		nominatim.WithDebug(flagDebug),
		nominatim.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

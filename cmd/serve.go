package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nominatim-cli/pkg/nominatim"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a small HTTP facade over the geocoding client",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newServeMux(newAPIClient()),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownServer(srv, 10*time.Second)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// shutdownServer drains in-flight requests before closing, bounded by
// timeout. The signal context is already canceled by the time we get here,
// so the drain needs its own deadline.
func shutdownServer(srv *http.Server, timeout time.Duration) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
}

// newServeMux builds the facade routes on top of a geocoding client.
func newServeMux(client nominatim.Client) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			http.Error(w, `{"error":"q is required"}`, http.StatusBadRequest)
			return
		}

		sq := nominatim.NewSearchQuery().FreeTextQuery(q)
		if limit := r.URL.Query().Get("limit"); limit != "" {
			n, err := strconv.Atoi(limit)
			if err != nil || n < 1 {
				http.Error(w, `{"error":"limit must be a positive integer"}`, http.StatusBadRequest)
				return
			}
			sq.Limit(n)
		}
		for _, code := range r.URL.Query()["countrycodes"] {
			if err := sq.AddCountryCode(code); err != nil {
				http.Error(w, `{"error":"countrycodes must be two-letter codes"}`, http.StatusBadRequest)
				return
			}
		}

		places, err := client.Search(r.Context(), sq)
		if err != nil {
			zap.L().Error("facade search failed", zap.String("q", q), zap.Error(err))
			http.Error(w, `{"error":"search failed"}`, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(places)
	})

	mux.HandleFunc("GET /reverse", func(w http.ResponseWriter, r *http.Request) {
		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			http.Error(w, `{"error":"lat and lon are required"}`, http.StatusBadRequest)
			return
		}

		place, err := client.Reverse(r.Context(), nominatim.NewReverseQuery().Coordinates(lat, lon))
		if err != nil {
			if errors.Is(err, nominatim.ErrNoResult) {
				http.Error(w, `{"error":"no result"}`, http.StatusNotFound)
				return
			}
			zap.L().Error("facade reverse failed",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(err),
			)
			http.Error(w, `{"error":"reverse geocode failed"}`, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(place)
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

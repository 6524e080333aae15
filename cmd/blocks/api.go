package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/api"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP session server",
	Long: `Start an HTTP server that hosts independent games driven by clients.

Endpoints:
  POST   /sessions             - Start a game, optional {"seed": n}
  GET    /sessions/{id}        - Game state
  POST   /sessions/{id}/keys   - {"key": "left", "pressed": true}
  POST   /sessions/{id}/update - {"elapsed": 0.25}
  GET    /sessions/{id}/frame  - Vertex buffer (octet-stream)
  GET    /sessions/{id}/board  - Board as text
  DELETE /sessions/{id}        - End a game

Examples:
  blocks api
  blocks api --http :9090`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address, overrides api.address")
}

func runAPI(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagHTTPAddr != "" {
		cfg.API.Address = flagHTTPAddr
	}

	server := api.NewServer(cfg.API, newLogger(cfg, os.Stderr, "blocks-api"))
	fmt.Printf("Starting blocks HTTP server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

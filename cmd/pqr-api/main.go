package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pqr-api",
	Short: "PQR API - pharmacy complaint tracking backend",
	Long:  `HTTP backend for registering and tracking PQR cases (peticiones, quejas y reclamos), with JWT auth, rate limiting, idempotency, and observability.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

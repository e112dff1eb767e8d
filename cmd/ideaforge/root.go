package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ideaforge",
	Short: "Ideaforge - AI project-idea generation service",
	Long: `Ideaforge serves a single idea-generation endpoint backed by an
upstream chat-completion gateway.

It validates and sanitizes project-idea parameters, rate-limits callers,
builds a schema-constrained prompt, and recovers structured JSON from the
model's reply.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-signpdf",
	Short: "PDF signature overlay service",
	Long: `go-signpdf overlays hand-drawn or saved signature images onto PDF
documents over a REST API, with optional user accounts, a saved-signature
library, and signing history.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package commands wires the blinkpdf CLI: the serve command runs the HTTP
// service, tools prints the catalog.
package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "blinkpdf",
	Short: "BlinkPDF - web PDF conversion service",
	Long: `BlinkPDF is a stateless web service exposing PDF manipulation tools
(merge, split, compress, convert, OCR and more) plus Gemini-backed document
tools through one uniform processing endpoint.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is the normal case outside development.
		_ = godotenv.Load()
		if cfgFile == "" {
			cfgFile = os.Getenv("BLINKPDF_CONFIG")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blinkpdf/blinkpdf/internal/tool"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available conversion tools",
	Run: func(cmd *cobra.Command, args []string) {
		registry := tool.DefaultRegistry()
		for _, desc := range registry.All() {
			arity := "single"
			if desc.Arity == tool.MultiFile {
				arity = fmt.Sprintf("multi (min %d)", desc.MinFiles())
			}
			fmt.Printf("%-20s %-8s %-14s %s\n", desc.ID, desc.Category, arity, desc.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

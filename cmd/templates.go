package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoprint/memoprint/internal/layout"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in layout templates",
	Run:   runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) {
	fmt.Printf("%-12s %-28s %-10s %-9s %s\n", "ID", "NAME", "PAGE (mm)", "CARD (mm)", "GRID")
	for _, tpl := range layout.Templates {
		grid := fmt.Sprintf("%dx%d", tpl.Cols, tpl.Rows)
		if tpl.ID == layout.DefaultTemplateID {
			grid += "  (default)"
		}
		fmt.Printf("%-12s %-28s %-10s %-9.0f %s\n",
			tpl.ID, tpl.Name, fmt.Sprintf("%.0fx%.0f", tpl.PageW, tpl.PageH), tpl.CardSize, grid)
	}
}

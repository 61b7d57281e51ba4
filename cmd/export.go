package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/memoprint/memoprint/internal/config"
	"github.com/memoprint/memoprint/internal/export"
	"github.com/memoprint/memoprint/internal/units"
)

var exportCmd = &cobra.Command{
	Use:   "export <project-id>",
	Short: "Render a project into a printable PDF",
	Long: `Render all photos of a project into a paginated PDF of square cards.
Every photo appears exactly twice, with its stored crop, zoom and
rotation applied.

Example:
  memoprint export 6b9f... -o cards.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Output file (defaults to a name derived from the project)")
	exportCmd.Flags().Int("density", units.DensityDPI, "Raster density in DPI")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Load())
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.GetProject(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	fmt.Printf("Project: %s (%d photos)\n", p.Name, len(p.Images))

	bar := progressbar.NewOptions(len(p.Images),
		progressbar.OptionSetDescription("Rendering cards"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	opts := export.Options{
		Density: mustGetInt(cmd, "density"),
		OnProgress: func(done, total int) {
			_ = bar.Set(done)
		},
	}

	pdf, err := export.Export(ctx, p, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Println()

	output := mustGetString(cmd, "output")
	if output == "" {
		output = export.DownloadFilename(p.Name)
	}
	if err := os.WriteFile(output, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", output, len(pdf))
	return nil
}

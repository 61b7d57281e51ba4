package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/memoprint/memoprint/internal/config"
	"github.com/memoprint/memoprint/internal/layout"
	"github.com/memoprint/memoprint/internal/project"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage card projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Long: `Create a new, empty project.

Example:
  memoprint projects create "Summer Vacation 2026" --template a4-compact`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectsCreate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and its images",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project and its images",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsShow,
}

var projectsAddImagesCmd = &cobra.Command{
	Use:   "add-images <project-id> <file>...",
	Short: "Add photos to a project",
	Long: `Add one or more photo files to a project. Each photo starts with a
default centered square crop and will appear exactly twice in the export.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runProjectsAddImages,
}

var projectsRemoveImageCmd = &cobra.Command{
	Use:   "remove-image <project-id> <image-id>",
	Short: "Remove a photo from a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectsRemoveImage,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsAddImagesCmd)
	projectsCmd.AddCommand(projectsRemoveImageCmd)

	projectsCreateCmd.Flags().String("template", layout.DefaultTemplateID, "Layout template id (see 'memoprint templates')")
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Load())
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No projects yet. Create one with 'memoprint projects create <name>'.")
		return nil
	}

	fmt.Printf("%-36s %-24s %-12s %s\n", "ID", "NAME", "TEMPLATE", "IMAGES")
	for _, s := range summaries {
		fmt.Printf("%-36s %-24s %-12s %d\n", s.ID, s.Name, s.TemplateID, s.ImageCount)
	}
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	templateID := mustGetString(cmd, "template")
	if _, err := layout.TemplateByID(templateID); err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openStore(ctx, config.Load())
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.CreateProject(ctx, args[0], templateID)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("Created project: %s\n", p.Name)
	fmt.Printf("ID: %s\n", p.ID)
	fmt.Printf("Template: %s\n", p.TemplateID)
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Load())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteProject(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	fmt.Printf("Deleted project %s\n", args[0])
	return nil
}

func runProjectsShow(cmd *cobra.Command, args []string) error {
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

	tpl, err := layout.TemplateByID(p.TemplateID)
	if err != nil {
		return err
	}
	plan := layout.Plan(tpl, imageIDs(p))

	fmt.Printf("Project: %s\n", p.Name)
	fmt.Printf("ID: %s\n", p.ID)
	fmt.Printf("Template: %s (%s)\n", tpl.ID, tpl.Name)
	fmt.Printf("Images: %d (%d cards on %d pages)\n\n", len(p.Images), plan.TileCount(), len(plan.Pages))

	for _, img := range p.Images {
		fmt.Printf("  %s  %s (%dx%d)", img.ID, img.Filename, img.Width, img.Height)
		if img.Crop.Zoom != project.MinZoom || img.Crop.RotationDegrees != 0 {
			fmt.Printf("  zoom=%.2f rotation=%.1f", img.Crop.Zoom, img.Crop.RotationDegrees)
		}
		fmt.Println()
	}
	return nil
}

func runProjectsAddImages(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Load())
	if err != nil {
		return err
	}
	defer store.Close()

	projectID := args[0]
	for _, path := range args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		img, err := store.AddImage(ctx, projectID, filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}
		fmt.Printf("Added %s (%dx%d) as %s\n", img.Filename, img.Width, img.Height, img.ID)
	}
	return nil
}

func runProjectsRemoveImage(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Load())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RemoveImage(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	fmt.Printf("Removed image %s\n", args[1])
	return nil
}

// imageIDs lists a project's image ids in stored order.
func imageIDs(p *project.Project) []string {
	ids := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		ids = append(ids, img.ID)
	}
	return ids
}

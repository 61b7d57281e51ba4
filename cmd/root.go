package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memoprint",
	Short: "Turn photos into printable memory-game card sheets",
	Long: `Memoprint takes a set of photographs, lets each one be cropped, zoomed
and rotated to a square card, and lays the cards out on fixed-size pages
so that every photo appears exactly twice. The result is a PDF ready to
print, laminate and cut into a memory game.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

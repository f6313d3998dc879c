package commands

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/services/nutrition"

	"github.com/spf13/cobra"
)

var cleanYes *bool

func init() {
	cleanYes = cleanCmd.Flags().Bool("yes", false, "Skip the confirmation prompt.")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean [--yes]",
	Short: "Deletes the generated json and csv output files.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService(cmd.Context())
		defer cleanup()
		runClean(svc, bufio.NewReader(os.Stdin), *cleanYes)
	},
}

func runClean(svc nutrition.Service, reader *bufio.Reader, yes bool) {
	files := renderFiles(svc)
	if len(files) == 0 {
		return
	}

	if !yes {
		fmt.Print("type 'delete' to remove these files: ")
		line, err := reader.ReadString('\n')
		if err != nil || strings.TrimSpace(line) != "delete" {
			fmt.Println("aborting")
			return
		}
	}

	removed, err := svc.CleanOutputs()
	if err != nil {
		serviceutil.Fatal("failed to clean output files", err)
	}
	for _, path := range removed {
		slog.Info("removed output file", "file", path)
	}
}

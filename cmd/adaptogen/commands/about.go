package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/services/nutrition"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(aboutCmd)
}

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Shows what the scraper targets and the recent run history.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService(cmd.Context())
		defer cleanup()
		renderAbout(cmd.Context(), svc)
	},
}

func renderAbout(ctx context.Context, svc nutrition.Service) {
	config := svc.Config()

	var categories []string
	for _, c := range config.Categories {
		categories = append(categories, c.Name)
	}

	fmt.Println("adaptogen nutritional facts scraper")
	fmt.Printf("target:     %s\n", config.BaseUrl)
	fmt.Printf("categories: %s\n", strings.Join(categories, ", "))
	fmt.Printf("outputs:    %s, %s\n", config.Collection, config.Facts)

	history, err := svc.History(ctx, 10)
	if err != nil {
		serviceutil.Fatal("failed to read run history", err)
	}
	if len(history) == 0 {
		fmt.Println("no runs recorded yet")
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"Id", "Kind", "Started", "Duration", "Processed", "Succeeded", "Failed", "Success"})
	for _, run := range history {
		t.AppendRow(table.Row{
			run.Id,
			run.Kind,
			run.StartedAt.Format(time.DateTime),
			run.Duration().Round(time.Second).String(),
			run.Processed,
			run.Succeeded,
			run.Failed,
			fmt.Sprintf("%.1f%%", run.SuccessRate()),
		})
	}
	t.Render()
}

package commands

import (
	"context"
	"log/slog"

	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/services/nutrition"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Walks the configured categories and saves every product url to the collection file.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService(cmd.Context())
		defer cleanup()
		runCollect(cmd.Context(), svc)
	},
}

func runCollect(ctx context.Context, svc nutrition.Service) nutrition.Collection {
	categories := svc.Config().CategoryList()
	writer, tracker := newProgress("collecting product urls", int64(len(categories)))
	collection, run := svc.Collect(ctx, categories, func(string, int) {
		tracker.Increment(1)
	})
	finishProgress(writer, tracker)

	err := nutrition.SaveCollection(svc.Config().Collection, collection)
	if err != nil {
		serviceutil.Fatal("failed to write collection file", err)
	}
	slog.Info("wrote product urls",
		"file", svc.Config().Collection, "products", collection.Total())

	renderRun(run)
	return collection
}

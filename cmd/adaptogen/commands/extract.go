package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/services/nutrition"

	"github.com/spf13/cobra"
)

var extractCategory *string

func init() {
	extractCategory = extractCmd.Flags().String(
		"category", "",
		"Only extract products in the configured category closest to this name.",
	)
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [--category <name>]",
	Short: "Scrapes the nutritional facts of every collected product into the csv file.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService(cmd.Context())
		defer cleanup()

		collection, err := loadCollection(svc)
		if err != nil {
			serviceutil.Fatal("failed to read collection file", err)
		}
		if *extractCategory != "" {
			collection = filterCategory(svc, collection, *extractCategory)
		}
		runExtract(cmd.Context(), svc, collection)
	},
}

func loadCollection(svc nutrition.Service) (nutrition.Collection, error) {
	collection, err := nutrition.LoadCollection(svc.Config().Collection)
	if errors.Is(err, nutrition.ErrNoCollection) {
		return nil, fmt.Errorf("nothing to extract, run a collect pass first: %w", err)
	}
	return collection, err
}

func filterCategory(svc nutrition.Service, collection nutrition.Collection, name string) nutrition.Collection {
	category, ok := nutrition.ClosestCategory(name, svc.Config().CategoryList())
	if !ok {
		serviceutil.Fatal("unknown category",
			fmt.Errorf("%q does not match any configured category", name))
	}

	urls, ok := collection[category.Name]
	if !ok {
		serviceutil.Fatal("category not collected",
			fmt.Errorf("the collection file has no %q entry", category.Name))
	}

	slog.Info("extracting a single category",
		"category", category.Name, "products", len(urls))
	return nutrition.Collection{category.Name: urls}
}

func runExtract(ctx context.Context, svc nutrition.Service, collection nutrition.Collection) {
	writer, tracker := newProgress("extracting nutritional facts", int64(collection.Total()))
	records, run := svc.Extract(ctx, collection, func(string, error) {
		tracker.Increment(1)
	})
	finishProgress(writer, tracker)

	err := nutrition.SaveFacts(svc.Config().Facts, records)
	if err != nil {
		serviceutil.Fatal("failed to write facts csv", err)
	}
	slog.Info("wrote nutritional facts",
		"file", svc.Config().Facts, "records", len(records))

	renderRun(run)
}

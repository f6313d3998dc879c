package nutrition

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"adaptogen-scraper/lib/runstore"
	"adaptogen-scraper/lib/scrapers/adaptogen"
	"adaptogen-scraper/lib/timezone"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
)

// Service drives the two passes over the catalog: collecting product
// urls per category, and extracting a nutrition record per product.
// Both passes run strictly sequentially, one request in flight at a
// time, and leave a row in the run history database when they finish.
type Service struct {
	client *adaptogen.Client
	store  runstore.Store
	config Config
}

func NewService(ctx context.Context, config Config, database *sql.DB) (Service, error) {
	client, err := adaptogen.NewClient(ctx, config.ClientOptions())
	if err != nil {
		return Service{}, err
	}
	return Service{
		client: client,
		store:  runstore.NewStore(database),
		config: config,
	}, nil
}

func (s Service) Config() Config {
	return s.config
}

func (s Service) record(ctx context.Context, run runstore.Run) runstore.Run {
	id, err := s.store.Record(ctx, run)
	if err != nil {
		slog.WarnContext(ctx, "failed to record run history", "kind", run.Kind, "err", err)
		return run
	}
	run.Id = id
	return run
}

// Collect walks every given category and gathers the product urls it
// links to. Categories that come back empty, whether from a fetch
// failure or a storefront without items, count as failed units in the
// returned run. observe, when not nil, runs after every category with
// the number of products it yielded.
func (s Service) Collect(ctx context.Context, categories []adaptogen.Category, observe func(category string, products int)) (Collection, runstore.Run) {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()

	run := runstore.Run{
		Kind:      "collect",
		StartedAt: timezone.Now(),
	}

	collection := Collection{}
	for _, category := range categories {
		refs := s.client.CategoryReferences(ctx, category)
		collection[category.Name] = refs

		run.Processed++
		if len(refs) > 0 {
			run.Succeeded++
		} else {
			run.Failed++
		}
		slog.InfoContext(ctx, "collected category",
			"category", category.Name, "products", len(refs))
		if observe != nil {
			observe(category.Name, len(refs))
		}
	}

	run.FinishedAt = timezone.Now()
	span.SetAttributes(attribute.Int("products", collection.Total()))
	return collection, s.record(ctx, run)
}

// extraction walks categories in config order so runs are comparable,
// anything the collection has beyond the config goes last, sorted
func (s Service) categoryOrder(collection Collection) []string {
	var names []string
	seen := map[string]bool{}
	for _, c := range s.config.Categories {
		if _, ok := collection[c.Name]; ok && !seen[c.Name] {
			names = append(names, c.Name)
			seen[c.Name] = true
		}
	}

	var rest []string
	for name := range collection {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// Extract fetches every product in the collection and pulls its
// nutrition record. Products without a facts table and products that
// fail to fetch are skipped, never retried. observe, when not nil,
// runs after every product with the error that unit ended in.
func (s Service) Extract(ctx context.Context, collection Collection, observe func(url string, err error)) ([]adaptogen.ProductFacts, runstore.Run) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	run := runstore.Run{
		Kind:      "extract",
		StartedAt: timezone.Now(),
	}

	var records []adaptogen.ProductFacts
	for _, name := range s.categoryOrder(collection) {
		urls := collection[name]
		slog.InfoContext(ctx, "extracting category",
			"category", name, "products", len(urls))

		for _, url := range urls {
			if ctx.Err() != nil {
				slog.WarnContext(ctx, "extraction interrupted", "err", ctx.Err())
				run.FinishedAt = timezone.Now()
				return records, s.record(ctx, run)
			}

			run.Processed++
			facts, err := s.client.ProductFacts(ctx, url, name)
			switch {
			case errors.Is(err, adaptogen.ErrNoFactsTable):
				// a legitimate page state, not a scrape failure
				slog.InfoContext(ctx, "product has no nutrition table", "url", url)
				run.Failed++
			case err != nil:
				slog.WarnContext(ctx, "failed to scrape product", "url", url, "err", err)
				run.Failed++
			default:
				slog.DebugContext(ctx, "extracted product", "name", facts.Name, "url", url)
				records = append(records, facts)
				run.Succeeded++
			}
			if observe != nil {
				observe(url, err)
			}
		}
	}

	run.FinishedAt = timezone.Now()
	span.SetAttributes(attribute.Int64("succeeded", run.Succeeded))
	return records, s.record(ctx, run)
}

func (s Service) History(ctx context.Context, limit int64) ([]runstore.Run, error) {
	return s.store.Recent(ctx, limit)
}

// ClosestCategory resolves a user-typed name against the configured
// categories, tolerating minor misspellings.
func ClosestCategory(name string, categories []adaptogen.Category) (adaptogen.Category, bool) {
	var best adaptogen.Category
	var bestScore float64
	for _, category := range categories {
		score := matchr.JaroWinkler(strings.ToLower(name), strings.ToLower(category.Name), false)
		if score > bestScore {
			bestScore = score
			best = category
		}
	}
	if bestScore < 0.8 {
		return adaptogen.Category{}, false
	}
	return best, true
}

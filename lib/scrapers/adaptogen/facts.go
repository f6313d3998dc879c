package adaptogen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adaptogen-scraper/lib/htmlutil"
	"adaptogen-scraper/lib/textutil"
	"adaptogen-scraper/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrNoFactsTable reports a product page without a nutrition table.
// Plenty of items legitimately ship without one (apparel, shakers),
// so callers should treat this as "no data" rather than a failure.
var ErrNoFactsTable = errors.New("no nutritional facts table on page")

const NAME_PLACEHOLDER = "Name not found"

// ProductFacts is the nutrition label of a single product. Nutrient
// readings are per serving, in the unit the storefront lists them
// under (kcal for energy, g for macros, mg for sodium), and default
// to 0 when the row is missing or its value fails to parse.
type ProductFacts struct {
	Name          string
	Url           string
	Serving       string
	Energy        float64
	Carbohydrates float64
	Protein       float64
	TotalFat      float64
	SaturatedFat  float64
	Fiber         float64
	Sugars        float64
	Sodium        float64
	CollectedAt   time.Time
	Category      string
}

// most specific first, the bare h1 catches themes that drop the
// woocommerce title classes
var nameSelectors = []string{
	"h1.product_title",
	"h1.product-title",
	"h1",
	".product-title",
	".product_title",
}

// nutrientMapping routes a row label onto a ProductFacts field by
// case-insensitive substring containment. Order matters: the first
// entry whose key is contained in the label wins, which keeps the
// tie-break deterministic when a label would satisfy several keys.
// The storefront writes labels in Portuguese, the English aliases
// cover product pages that ship a translated table.
var nutrientMapping = []struct {
	key string
	set func(*ProductFacts, float64)
}{
	{"valor energético", func(f *ProductFacts, v float64) { f.Energy = v }},
	{"energy value", func(f *ProductFacts, v float64) { f.Energy = v }},
	{"carboidratos", func(f *ProductFacts, v float64) { f.Carbohydrates = v }},
	{"carbohydrates", func(f *ProductFacts, v float64) { f.Carbohydrates = v }},
	{"proteínas", func(f *ProductFacts, v float64) { f.Protein = v }},
	{"protein", func(f *ProductFacts, v float64) { f.Protein = v }},
	{"gorduras totais", func(f *ProductFacts, v float64) { f.TotalFat = v }},
	{"total fat", func(f *ProductFacts, v float64) { f.TotalFat = v }},
	{"gorduras saturadas", func(f *ProductFacts, v float64) { f.SaturatedFat = v }},
	{"saturated fat", func(f *ProductFacts, v float64) { f.SaturatedFat = v }},
	{"fibras alimentares", func(f *ProductFacts, v float64) { f.Fiber = v }},
	{"dietary fiber", func(f *ProductFacts, v float64) { f.Fiber = v }},
	{"açúcares totais", func(f *ProductFacts, v float64) { f.Sugars = v }},
	{"total sugars", func(f *ProductFacts, v float64) { f.Sugars = v }},
	{"sódio", func(f *ProductFacts, v float64) { f.Sodium = v }},
	{"sodium", func(f *ProductFacts, v float64) { f.Sodium = v }},
}

func matchNutrient(label string) (func(*ProductFacts, float64), bool) {
	label = textutil.NormalizeLabel(label)
	for _, entry := range nutrientMapping {
		if strings.Contains(label, entry.key) {
			return entry.set, true
		}
	}
	return nil, false
}

func productName(doc *goquery.Document) string {
	for _, selector := range nameSelectors {
		el := doc.Find(selector).First()
		if el.Length() > 0 {
			return htmlutil.Text(el)
		}
	}
	return NAME_PLACEHOLDER
}

// ExtractFacts reads the nutrition label out of a parsed product page.
// ok is false when the page carries no recognizable facts table, in
// which case no record should be produced for the product. Rows whose
// label maps onto the same field overwrite each other, the last row
// wins.
func ExtractFacts(doc *goquery.Document, productUrl string, category string) (ProductFacts, bool) {
	flow := doc.Find("div.flow").First()
	if flow.Length() == 0 {
		return ProductFacts{}, false
	}
	table := flow.Find("table").First()
	if table.Length() == 0 {
		return ProductFacts{}, false
	}

	facts := ProductFacts{
		Name:        productName(doc),
		Url:         productUrl,
		Serving:     ServingSize(table),
		CollectedAt: timezone.Now(),
		Category:    category,
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		set, ok := matchNutrient(cells.Eq(0).Text())
		if !ok {
			return
		}
		set(&facts, NumericValue(cells.Eq(1).Text()))
	})

	return facts, true
}

// ProductFacts fetches one product page and extracts its nutrition
// label. A page without a facts table comes back as ErrNoFactsTable,
// fetch and parse failures pass through as-is.
func (c *Client) ProductFacts(ctx context.Context, productUrl, category string) (ProductFacts, error) {
	ctx, span := tracer.Start(ctx, "client:ProductFacts")
	defer span.End()
	span.SetAttributes(attribute.String("url", productUrl))

	doc, err := c.FetchPage(ctx, productUrl)
	if err != nil {
		return ProductFacts{}, err
	}

	facts, ok := ExtractFacts(doc, productUrl, category)
	if !ok {
		span.SetStatus(codes.Error, ErrNoFactsTable.Error())
		return ProductFacts{}, fmt.Errorf("%s: %w", productUrl, ErrNoFactsTable)
	}

	span.SetAttributes(attribute.String("name", facts.Name))
	return facts, nil
}

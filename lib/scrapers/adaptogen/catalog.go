package adaptogen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"adaptogen-scraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// Category is one storefront section to walk for product links.
type Category struct {
	Name string
	Path string
	// paginated categories are walked through the `?sf_paged=N` query
	// parameter until the storefront reports that no products are left
	Paginated bool
}

// the storefront renders this heading in place of the product grid
// once a paginated listing runs out of items
const NO_PRODUCTS_MARKER = "Nenhum produto encontrado"

const productPathSegment = "/produto/"

func hasNoProductsMarker(doc *goquery.Document) bool {
	found := false
	doc.Find("h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) == NO_PRODUCTS_MARKER {
			found = true
			return false
		}
		return true
	})
	return found
}

// ProductLinks pulls every product page url out of a category listing,
// resolved against the client's base url and deduplicated in
// first-seen order. WooCommerce tags product cards with a well-known
// anchor class, some themed sections drop it, so any anchor pointing
// into /produto/ is picked up as a fallback.
func (c *Client) ProductLinks(ctx context.Context, doc *goquery.Document) []string {
	ctx, span := tracer.Start(ctx, "client:ProductLinks")
	defer span.End()

	anchors := htmlutil.GetAnchors(ctx, doc.Find("a.woocommerce-LoopProduct-link"))
	if len(anchors) == 0 {
		for _, a := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
			if strings.Contains(a.Href, productPathSegment) {
				anchors = append(anchors, a)
			}
		}
	}

	links := []string{}
	seen := map[string]bool{}
	for _, a := range anchors {
		if a.Href == "" {
			continue
		}
		link := c.resolveHref(a.Href)
		if seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}

	span.SetAttributes(attribute.Int("count", len(links)))
	return links
}

func (c *Client) resolveHref(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	base := strings.TrimSuffix(c.BaseUrl.String(), "/")
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}

// CategoryReferences walks a category listing and returns every
// product url it links to, in first-seen order. A fetch failure, an
// empty page and the storefront's end-of-listing marker all end the
// walk, whatever accumulated so far is returned.
func (c *Client) CategoryReferences(ctx context.Context, category Category) []string {
	ctx, span := tracer.Start(ctx, "client:CategoryReferences")
	defer span.End()
	span.SetAttributes(attribute.String("category", category.Name))

	refs := []string{}
	seen := map[string]bool{}

	for page := 1; page <= c.maxPages; page++ {
		target := category.Path
		if category.Paginated {
			target = fmt.Sprintf("%s?sf_paged=%d", category.Path, page)
		}

		doc, err := c.FetchPage(ctx, target)
		if err != nil {
			slog.WarnContext(ctx, "stopping category walk on fetch error",
				"category", category.Name, "page", page, "err", err)
			break
		}
		if hasNoProductsMarker(doc) {
			slog.DebugContext(ctx, "reached end of category",
				"category", category.Name, "page", page)
			break
		}

		links := c.ProductLinks(ctx, doc)
		if len(links) == 0 {
			slog.DebugContext(ctx, "page has no product links",
				"category", category.Name, "page", page)
			break
		}

		added := 0
		for _, link := range links {
			if seen[link] {
				continue
			}
			seen[link] = true
			refs = append(refs, link)
			added++
		}
		slog.DebugContext(ctx, "collected page",
			"category", category.Name, "page", page,
			"new", added, "total", len(refs))

		if !category.Paginated {
			break
		}
		if page == c.maxPages {
			slog.WarnContext(ctx, "hit the page cap before the category ended",
				"category", category.Name, "pages", c.maxPages)
		}
	}

	span.SetAttributes(attribute.Int("count", len(refs)))
	return refs
}

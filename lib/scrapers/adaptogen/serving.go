package adaptogen

import (
	"regexp"
	"strings"

	"adaptogen-scraper/lib/htmlutil"
	"adaptogen-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// the storefront phrases the serving size in several ways, ordered
// here from most to least specific so the loosest pattern only fires
// when nothing better did. each capture runs until the end of the
// line the phrase sits on.
var servingPatterns = []*regexp.Regexp{
	// "Porção: 25 g (1 unidade)" / "Serving: 25 g (1 unit)"
	regexp.MustCompile(`(?i)(?:porção|serving):\s*([^<\n]+)`),
	// "Porção de 2 dosadores – 10g" / "Serving of 2 scoops – 10g"
	regexp.MustCompile(`(?i)(?:porção de|serving of)\s+([^<\n]+)`),
	// "Porção  de  10g", extra whitespace around the connector
	regexp.MustCompile(`(?i)(?:porção|serving)\s+(?:de|of)\s+([^<\n]+)`),
	// "Porção 10g" / "Serving 10g"
	regexp.MustCompile(`(?i)(?:porção|serving)\s+([^<\n]+)`),
}

var servingKeywords = []string{"porção", "serving"}

var servingConnectors = []string{"de", "of"}

var servingKeywordRegex = regexp.MustCompile(`(?i)porção|serving`)

func matchServingPatterns(text string) string {
	for _, pattern := range servingPatterns {
		groups := pattern.FindStringSubmatch(text)
		if len(groups) < 2 {
			continue
		}
		serving := htmlutil.CollapseSpace(groups[1])
		if serving != "" {
			return serving
		}
	}
	return ""
}

// ServingSize digs the serving description out of a nutrition table.
// The storefront puts it in at least four different places, so this
// tries, in order: the table header text against the phrase patterns,
// then each cell of the first body row that mentions the keyword,
// first against the same patterns, then by splitting on the connector
// word, and finally by stripping the keyword itself and keeping
// whatever is left. Returns "" when every rule comes up empty.
func ServingSize(table *goquery.Selection) string {
	thead := table.Find("thead").First()
	if thead.Length() > 0 {
		if serving := matchServingPatterns(thead.Text()); serving != "" {
			return serving
		}
	}

	firstRow := table.Find("tbody tr").First()
	if firstRow.Length() == 0 {
		return ""
	}

	var cellTexts []string
	firstRow.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cellTexts = append(cellTexts, cell.Text())
	})

	for _, text := range cellTexts {
		if !textutil.ContainsAny(text, servingKeywords) {
			continue
		}

		if serving := matchServingPatterns(text); serving != "" {
			return serving
		}

		// "Porção de 2 dosadores – 10g" with markup splitting the
		// phrase across nodes defeats the patterns, the connector
		// split still recovers the trailing segment
		lowered := strings.ToLower(text)
		for _, connector := range servingConnectors {
			if !strings.Contains(lowered, connector) {
				continue
			}
			parts := strings.SplitN(text, connector, 2)
			if len(parts) < 2 {
				continue
			}
			serving := htmlutil.CollapseSpace(parts[1])
			if serving != "" {
				return serving
			}
		}

		serving := htmlutil.CollapseSpace(servingKeywordRegex.ReplaceAllString(text, ""))
		if serving != "" {
			return serving
		}
	}

	return ""
}

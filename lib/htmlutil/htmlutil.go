package htmlutil

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("adaptogen.lib.htmlutil")

// GetText concatenates every text node under node in document order,
// markup stripped, whitespace untouched.
func GetText(node *html.Node) string {
	var b strings.Builder
	writeText(&b, node)
	return b.String()
}

func writeText(b *strings.Builder, node *html.Node) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		b.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(b, child)
	}
}

// Text returns the selection's text content with whitespace collapsed,
// the form the scraper wants table cells and headings in.
func Text(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeText(&b, node)
		b.WriteByte(' ')
	}
	return CollapseSpace(b.String())
}

// CollapseSpace trims a string and squashes every interior whitespace
// run (spaces, tabs, newlines, nbsp) into a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// Anchor is an <a> tag reduced to its visible name and href.
type Anchor struct {
	Name string
	Href string
}

// GetAnchors reduces every anchor in the selection to its cleaned up
// name and href. Anchors without an href are kept with an empty one,
// anchors whose href does not parse are dropped.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	sel.Each(func(_ int, a *goquery.Selection) {
		link, err := url.Parse(a.AttrOr("href", ""))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing anchor href")
			return
		}
		anchors = append(anchors, Anchor{
			Name: CollapseSpace(stripUnprintable(Text(a))),
			Href: link.String(),
		})
	})

	span.SetAttributes(attribute.Int("anchors", len(anchors)))
	return anchors
}

package adaptogen

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func tableFromHtml(t *testing.T, html string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	table := doc.Find("table").First()
	require.Equal(t, 1, table.Length())
	return table
}

func TestServingSizeFromHeader(t *testing.T) {
	cases := []struct {
		name   string
		html   string
		expect string
	}{
		{
			name: "colon phrasing",
			html: `<table>
				<thead>
					<tr><th>Informação Nutricional</th></tr>
					<tr><th>Porção: 25 g (1 unidade)</th></tr>
					<tr><th>% VD (*)</th></tr>
				</thead>
				<tbody><tr><td>Valor Energético</td><td>113 kcal</td></tr></tbody>
			</table>`,
			expect: "25 g (1 unidade)",
		},
		{
			name: "english colon phrasing",
			html: `<table>
				<thead><tr><th>Serving: 25 g (1 unit)</th></tr></thead>
				<tbody><tr><td>Protein</td><td>24 g</td></tr></tbody>
			</table>`,
			expect: "25 g (1 unit)",
		},
		{
			name: "connector phrasing",
			html: `<table>
				<thead>
					<tr><th>Tabela Nutricional</th></tr>
					<tr><th>Porção de 2 dosadores – 10g</th></tr>
				</thead>
				<tbody><tr><td>Sódio</td><td>95 mg</td></tr></tbody>
			</table>`,
			expect: "2 dosadores – 10g",
		},
		{
			name: "bare phrasing",
			html: `<table>
				<thead><tr><th>Porção 30 g</th></tr></thead>
				<tbody><tr><td>Proteínas</td><td>24 g</td></tr></tbody>
			</table>`,
			expect: "30 g",
		},
		{
			name:   "whitespace collapsed",
			html:   "<table><thead><tr><th>Porção:   2 \t dosadores \t – 10g</th></tr></thead><tbody></tbody></table>",
			expect: "2 dosadores – 10g",
		},
		{
			name:   "capture stops at the line end",
			html:   "<table><thead><tr><th>Porção: 25 g\n1 dosador</th></tr></thead><tbody></tbody></table>",
			expect: "25 g",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expect, ServingSize(tableFromHtml(t, test.html)))
		})
	}
}

func TestServingSizeFromFirstBodyRow(t *testing.T) {
	html := `<table>
		<tbody>
			<tr><td>Serving of 2 scoops – 10g</td><td></td></tr>
			<tr><td>Protein</td><td>24 g</td></tr>
		</tbody>
	</table>`
	require.Equal(t, "2 scoops – 10g", ServingSize(tableFromHtml(t, html)))
}

func TestServingSizeHeaderTakesPriority(t *testing.T) {
	html := `<table>
		<thead><tr><th>Porção: 25 g</th></tr></thead>
		<tbody><tr><td>Porção de 40 g</td><td></td></tr></tbody>
	</table>`
	require.Equal(t, "25 g", ServingSize(tableFromHtml(t, html)))
}

func TestServingSizeConnectorSplit(t *testing.T) {
	// the keyword sits after the quantity so the phrase patterns miss,
	// splitting on the connector still recovers the trailing segment
	html := `<table>
		<tbody>
			<tr><th>Embalagem com 2 medidas de 15g – porção</th><td></td></tr>
		</tbody>
	</table>`
	require.Equal(t, "15g – porção", ServingSize(tableFromHtml(t, html)))
}

func TestServingSizeKeywordStripped(t *testing.T) {
	html := `<table>
		<tbody>
			<tr><td>30g na porção</td><td></td></tr>
		</tbody>
	</table>`
	require.Equal(t, "30g na", ServingSize(tableFromHtml(t, html)))
}

func TestServingSizeUnresolved(t *testing.T) {
	cases := []struct {
		name string
		html string
	}{
		{
			name: "unrelated header and rows",
			html: `<table>
				<thead><tr><th>Informação Nutricional</th></tr></thead>
				<tbody><tr><td>Valor Energético</td><td>113 kcal</td></tr></tbody>
			</table>`,
		},
		{
			name: "empty table",
			html: `<table><tbody></tbody></table>`,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, "", ServingSize(tableFromHtml(t, test.html)))
		})
	}
}

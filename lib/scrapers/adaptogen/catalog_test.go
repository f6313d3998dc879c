package adaptogen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseUrl string) *Client {
	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: baseUrl,
	})
	require.NoError(t, err)
	return client
}

func TestProductLinksPrimarySelector(t *testing.T) {
	client := testClient(t, "https://adaptogen.com.br")
	doc := docFromHtml(t, `<div class="products">
		<a class="woocommerce-LoopProduct-link" href="https://adaptogen.com.br/produto/whey-gold">Whey Gold</a>
		<a class="woocommerce-LoopProduct-link" href="/produto/creatina-300g">Creatina</a>
		<a href="/produto/ignored-without-marker">Ignored</a>
		<a href="/carrinho">Carrinho</a>
	</div>`)

	links := client.ProductLinks(context.Background(), doc)
	require.Equal(t, []string{
		"https://adaptogen.com.br/produto/whey-gold",
		"https://adaptogen.com.br/produto/creatina-300g",
	}, links)
}

func TestProductLinksFallbackSelector(t *testing.T) {
	client := testClient(t, "https://adaptogen.com.br")
	doc := docFromHtml(t, `<div class="products">
		<a href="https://adaptogen.com.br/produto/whey-gold">Whey Gold</a>
		<a href="produto/barra-proteina">Barra</a>
		<a href="/carrinho">Carrinho</a>
	</div>`)

	links := client.ProductLinks(context.Background(), doc)
	require.Equal(t, []string{
		"https://adaptogen.com.br/produto/whey-gold",
		"https://adaptogen.com.br/produto/barra-proteina",
	}, links)
}

func TestProductLinksDeduplicates(t *testing.T) {
	client := testClient(t, "https://adaptogen.com.br")
	doc := docFromHtml(t, `<div class="products">
		<a class="woocommerce-LoopProduct-link" href="https://adaptogen.com.br/produto/whey-gold">image link</a>
		<a class="woocommerce-LoopProduct-link" href="https://adaptogen.com.br/produto/creatina-300g">Creatina</a>
		<a class="woocommerce-LoopProduct-link" href="https://adaptogen.com.br/produto/whey-gold">title link</a>
	</div>`)

	links := client.ProductLinks(context.Background(), doc)
	require.Equal(t, []string{
		"https://adaptogen.com.br/produto/whey-gold",
		"https://adaptogen.com.br/produto/creatina-300g",
	}, links)
}

func TestProductLinksEmptyPage(t *testing.T) {
	client := testClient(t, "https://adaptogen.com.br")
	doc := docFromHtml(t, `<div class="products"></div>`)

	links := client.ProductLinks(context.Background(), doc)
	require.Empty(t, links)
}

func TestResolveHref(t *testing.T) {
	client := testClient(t, "https://adaptogen.com.br/")

	cases := []struct {
		href   string
		expect string
	}{
		{"https://adaptogen.com.br/produto/whey", "https://adaptogen.com.br/produto/whey"},
		{"http://other.example.com/produto/x", "http://other.example.com/produto/x"},
		{"/produto/whey", "https://adaptogen.com.br/produto/whey"},
		{"produto/whey", "https://adaptogen.com.br/produto/whey"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, client.resolveHref(test.href), "href: %q", test.href)
	}
}

func TestHasNoProductsMarker(t *testing.T) {
	withMarker := docFromHtml(t, `<div><h3>Nenhum produto encontrado</h3></div>`)
	require.True(t, hasNoProductsMarker(withMarker))

	withPadding := docFromHtml(t, "<div><h3>\n\tNenhum produto encontrado\n</h3></div>")
	require.True(t, hasNoProductsMarker(withPadding))

	unrelated := docFromHtml(t, `<div><h3>Produtos em destaque</h3></div>`)
	require.False(t, hasNoProductsMarker(unrelated))
}

package adaptogen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adaptogen-scraper/lib/telemetry"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func categoryPage(slugs ...string) string {
	page := `<html><body><div class="products">`
	for _, slug := range slugs {
		page += fmt.Sprintf(
			`<a class="woocommerce-LoopProduct-link" href="/produto/%s">%s</a>`,
			slug, slug,
		)
	}
	page += `</div></body></html>`
	return page
}

const noProductsPage = `<html><body><h3>Nenhum produto encontrado</h3></body></html>`

func TestFetchPageStatusError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/adaptogen")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.FetchPage(context.Background(), "/produto/sumiu")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestCategoryReferencesPaginated(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/adaptogen")
	defer cleanup()

	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		switch r.URL.Query().Get("sf_paged") {
		case "1":
			fmt.Fprint(w, categoryPage("whey-gold", "whey-isolado", "whey-gold"))
		case "2":
			fmt.Fprint(w, categoryPage("whey-isolado", "albumina"))
		default:
			fmt.Fprint(w, noProductsPage)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	refs := client.CategoryReferences(context.Background(), Category{
		Name:      "proteinas",
		Path:      "/proteinas/",
		Paginated: true,
	})

	// the marker page ends the walk, pages 1 and 2 merge in
	// first-seen order
	require.Equal(t, 3, fetches)
	require.Equal(t, []string{
		server.URL + "/produto/whey-gold",
		server.URL + "/produto/whey-isolado",
		server.URL + "/produto/albumina",
	}, refs)
}

func TestCategoryReferencesStopsOnEmptyPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/adaptogen")
	defer cleanup()

	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		if r.URL.Query().Get("sf_paged") == "1" {
			fmt.Fprint(w, categoryPage("creatina-300g"))
			return
		}
		// no marker and no product links either
		fmt.Fprint(w, `<html><body><div class="products"></div></body></html>`)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	refs := client.CategoryReferences(context.Background(), Category{
		Name:      "creatinas",
		Path:      "/creatina/",
		Paginated: true,
	})

	require.Equal(t, 2, fetches)
	require.Equal(t, []string{server.URL + "/produto/creatina-300g"}, refs)
}

func TestCategoryReferencesStopsOnFetchError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/adaptogen")
	defer cleanup()

	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		if r.URL.Query().Get("sf_paged") == "1" {
			fmt.Fprint(w, categoryPage("pasta-amendoim"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	refs := client.CategoryReferences(context.Background(), Category{
		Name:      "snacks",
		Path:      "/proteinas/snacks-proteicos/",
		Paginated: true,
	})

	// whatever accumulated before the failure is kept
	require.Equal(t, 2, fetches)
	require.Equal(t, []string{server.URL + "/produto/pasta-amendoim"}, refs)
}

func TestCategoryReferencesPageCap(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/adaptogen")
	defer cleanup()

	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		// a misbehaving listing that never runs out of products
		fmt.Fprint(w, categoryPage("produto-"+r.URL.Query().Get("sf_paged")))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl:  server.URL,
		MaxPages: 3,
	})
	require.NoError(t, err)

	refs := client.CategoryReferences(context.Background(), Category{
		Name:      "proteinas",
		Path:      "/proteinas/",
		Paginated: true,
	})

	require.Equal(t, 3, fetches)
	require.Equal(t, []string{
		server.URL + "/produto/produto-1",
		server.URL + "/produto/produto-2",
		server.URL + "/produto/produto-3",
	}, refs)
}

func TestCategoryReferencesSinglePage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/adaptogen")
	defer cleanup()

	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		require.Equal(t, "", r.URL.Query().Get("sf_paged"))
		fmt.Fprint(w, categoryPage("pre-treino-panic", "pre-treino-insano"))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	refs := client.CategoryReferences(context.Background(), Category{
		Name: "pre-treino",
		Path: "/pre-treino",
	})

	require.Equal(t, 1, fetches)
	require.Equal(t, []string{
		server.URL + "/produto/pre-treino-panic",
		server.URL + "/produto/pre-treino-insano",
	}, refs)
}

func TestProductFactsFromServer(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/adaptogen")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/produto/whey-gold":
			fmt.Fprint(w, wheyProductPage)
		case "/produto/camiseta":
			fmt.Fprint(w, `<html><body><h1>Camiseta</h1></body></html>`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	facts, err := client.ProductFacts(context.Background(), server.URL+"/produto/whey-gold", "proteinas")
	require.NoError(t, err)
	require.Equal(t, "Whey Gold 900g", facts.Name)
	require.Equal(t, 24.0, facts.Protein)
	require.Equal(t, "proteinas", facts.Category)

	_, err = client.ProductFacts(context.Background(), server.URL+"/produto/camiseta", "snacks")
	require.ErrorIs(t, err, ErrNoFactsTable)

	_, err = client.ProductFacts(context.Background(), server.URL+"/produto/sumiu", "snacks")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestRequestDelayThrottles(t *testing.T) {
	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl:      "https://adaptogen.com.br",
		RequestDelay: time.Second * 2,
	})
	require.NoError(t, err)
	require.Equal(t, rate.Every(time.Second*2), client.limiter.Limit())

	unthrottled, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: "https://adaptogen.com.br",
	})
	require.NoError(t, err)
	require.Equal(t, rate.Inf, unthrottled.limiter.Limit())
}

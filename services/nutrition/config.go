package nutrition

import (
	"time"

	configsqlite "adaptogen-scraper/lib/configutil/sqlite"
	"adaptogen-scraper/lib/scrapers/adaptogen"
)

type CategoryConfig struct {
	Name string `json:"name"`
	Path string `json:"path"`
	// walked through ?sf_paged=N until the storefront runs out of
	// products, single fetch otherwise
	Paginated bool `json:"paginated"`
}

type Config struct {
	BaseUrl string `json:"base_url"`
	// minimum spacing between requests, respect the storefront
	RequestDelaySeconds float64 `json:"request_delay_seconds"`
	// safety cap on pages fetched per paginated category
	MaxPages   int                 `json:"max_pages"`
	Categories []CategoryConfig    `json:"categories"`
	Collection string              `json:"collection_file"`
	Facts      string              `json:"facts_file"`
	Database   configsqlite.Struct `json:"database"`
}

// DefaultConfig is what a bare checkout runs with, config.json5 and
// config.local.json5 override it field by field.
func DefaultConfig() Config {
	return Config{
		BaseUrl:             "https://adaptogen.com.br",
		RequestDelaySeconds: 2,
		MaxPages:            adaptogen.DEFAULT_MAX_PAGES,
		Categories: []CategoryConfig{
			{Name: "pre-treino", Path: "/pre-treino"},
			{Name: "snacks", Path: "/proteinas/snacks-proteicos/"},
			{Name: "proteinas", Path: "/proteinas/", Paginated: true},
			{Name: "creatinas", Path: "/creatina/"},
		},
		Collection: "json/product_urls.json",
		Facts:      "data/nutrition_facts.csv",
		Database:   configsqlite.Struct{File: "data/runs.db"},
	}
}

func (c Config) CategoryList() []adaptogen.Category {
	categories := make([]adaptogen.Category, len(c.Categories))
	for i, cat := range c.Categories {
		categories[i] = adaptogen.Category{
			Name:      cat.Name,
			Path:      cat.Path,
			Paginated: cat.Paginated,
		}
	}
	return categories
}

func (c Config) ClientOptions() adaptogen.ClientOptions {
	return adaptogen.ClientOptions{
		BaseUrl:      c.BaseUrl,
		RequestDelay: time.Duration(c.RequestDelaySeconds * float64(time.Second)),
		MaxPages:     c.MaxPages,
	}
}

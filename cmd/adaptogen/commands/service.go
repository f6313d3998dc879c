package commands

import (
	"context"

	"adaptogen-scraper/lib/configutil"
	"adaptogen-scraper/lib/runstore"
	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/services/nutrition"
)

func loadConfig() nutrition.Config {
	config, err := configutil.ReadConfigOrDefault("config.json5", nutrition.DefaultConfig())
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return config
}

func openService(ctx context.Context) (nutrition.Service, func()) {
	config := loadConfig()

	database, err := config.Database.OpenDB(runstore.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open run history database", err)
	}

	svc, err := nutrition.NewService(ctx, config, database)
	if err != nil {
		serviceutil.Fatal("failed to initialize scraper client", err)
	}
	return svc, func() { database.Close() }
}

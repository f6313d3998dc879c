package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"adaptogen-scraper/lib/telemetry"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// schema to apply to the test database, empty skips the exec
	DbSchema string
	// defaults to `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService wires telemetry and an sqlite database for a service
// test. The returned cleanup closes both.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	telemetryCleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = ":memory:"
	}
	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	if params.DbSchema != "" {
		_, err = db.Exec(params.DbSchema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			t.Fatal(err)
		}
	}

	return ServiceResult{DB: db}, func() {
		if err := db.Close(); err != nil {
			t.Error(err)
		}
		telemetryCleanup()
	}
}

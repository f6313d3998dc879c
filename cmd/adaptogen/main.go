package main

import (
	"adaptogen-scraper/cmd/adaptogen/commands"
	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "adaptogen")
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}

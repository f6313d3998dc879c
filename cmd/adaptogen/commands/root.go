package commands

import (
	"context"
	"fmt"
	"os"

	"adaptogen-scraper/lib/restyutil"
	"adaptogen-scraper/lib/scrapers/adaptogen"
	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool

func init() {
	verbose = rootCmd.PersistentFlags().BoolP(
		"verbose", "v", false,
		"Log at debug level and dump every http exchange to .dev/resty/adaptogen.",
	)
}

var rootCmd = &cobra.Command{
	Use:   "adaptogen",
	Short: "adaptogen scrapes nutritional facts from the adaptogen.com.br catalog.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if *verbose {
			out, err := restyutil.NewFilesystemOutput(".dev/resty/adaptogen")
			if err != nil {
				serviceutil.Fatal("failed to prepare request dump directory", err)
			}
			adaptogen.SetRestyInstrumentOutput(out)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runMenu(cmd.Context())
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collects product urls and extracts their nutritional facts in one pass.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService(cmd.Context())
		defer cleanup()

		collection := runCollect(cmd.Context(), svc)
		runExtract(cmd.Context(), svc, collection)
	},
}

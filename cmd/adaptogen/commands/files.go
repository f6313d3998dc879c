package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(filesCmd)
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Lists the output files the scraper has produced so far.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cleanup := openService(cmd.Context())
		defer cleanup()
		renderFiles(svc)
	},
}

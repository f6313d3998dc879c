package commands

import (
	"fmt"
	"os"
	"time"

	"adaptogen-scraper/lib/runstore"
	"adaptogen-scraper/lib/serviceutil"
	"adaptogen-scraper/services/nutrition"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderRun(run runstore.Run) {
	t := newTable()
	t.AppendHeader(table.Row{"Kind", "Duration", "Processed", "Succeeded", "Failed", "Success"})
	t.AppendRow(table.Row{
		run.Kind,
		run.Duration().Round(time.Millisecond).String(),
		run.Processed,
		run.Succeeded,
		run.Failed,
		fmt.Sprintf("%.1f%%", run.SuccessRate()),
	})
	t.Render()
}

func formatSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}

func renderFiles(svc nutrition.Service) []nutrition.OutputFile {
	files, err := svc.OutputFiles()
	if err != nil {
		serviceutil.Fatal("failed to list output files", err)
	}
	if len(files) == 0 {
		fmt.Println("no output files yet")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"File", "Size", "Modified"})
	for _, f := range files {
		t.AppendRow(table.Row{f.Path, formatSize(f.Size), f.ModifiedAt.Format(time.DateTime)})
	}
	t.Render()
	return files
}

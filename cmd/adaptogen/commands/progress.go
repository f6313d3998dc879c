package commands

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// newProgress starts rendering a single tracker to stdout. Callers
// must finish it with finishProgress before printing anything else.
func newProgress(message string, total int64) (progress.Writer, *progress.Tracker) {
	writer := progress.NewWriter()
	writer.SetOutputWriter(os.Stdout)
	writer.SetAutoStop(true)
	writer.SetUpdateFrequency(time.Millisecond * 100)

	tracker := &progress.Tracker{Message: message, Total: total}
	writer.AppendTracker(tracker)
	go writer.Render()
	return writer, tracker
}

func finishProgress(writer progress.Writer, tracker *progress.Tracker) {
	tracker.MarkAsDone()
	for writer.IsRenderInProgress() {
		if writer.LengthActive() == 0 {
			writer.Stop()
		}
		time.Sleep(time.Millisecond * 10)
	}
}

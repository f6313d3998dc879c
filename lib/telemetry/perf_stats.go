package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

// InstrumentPerfStats samples process health into otel gauges every
// 30 seconds until ctx ends.
func InstrumentPerfStats(ctx context.Context) {
	meter := otel.Meter("adaptogen.perf")
	cpuGauge, err1 := meter.Float64Gauge("cpu_percent")
	heapGauge, err2 := meter.Int64Gauge("heap_alloc_mb")
	objectsGauge, err3 := meter.Int64Gauge("live_objects")
	goroutinesGauge, err4 := meter.Int64Gauge("goroutines")
	if err := errors.Join(err1, err2, err3, err4); err != nil {
		slog.Warn("failed to register perf gauges", "err", err)
		return
	}

	go func() {
		ticker := time.NewTicker(time.Second * 30)
		defer ticker.Stop()

		var memStats runtime.MemStats
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			// usage since the previous sample
			usage, err := cpu.Percent(0, false)
			if err != nil {
				slog.Warn("failed to read cpu usage", "err", err)
			} else if len(usage) > 0 {
				cpuGauge.Record(ctx, usage[0])
			}

			runtime.ReadMemStats(&memStats)
			heapGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
			objectsGauge.Record(ctx, int64(memStats.Mallocs-memStats.Frees))
			goroutinesGauge.Record(ctx, int64(runtime.NumGoroutine()))
		}
	}()
}

package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var perfMeter = otel.Meter("storefront.perf_stats")

// InstrumentPerfStats samples process health gauges every 30 seconds
// until ctx is cancelled.
func InstrumentPerfStats(ctx context.Context) {
	cpuGauge, _ := perfMeter.Float64Gauge("cpu_usage")
	heapGauge, _ := perfMeter.Int64Gauge("heap_alloc_mb")
	liveObjectsGauge, _ := perfMeter.Int64Gauge("live_objects")
	goroutineGauge, _ := perfMeter.Int64Gauge("goroutine_count")

	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(time.Second * 30)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)

				usage, err := cpu.Percent(time.Minute, false)
				if err == nil && len(usage) > 0 {
					cpuGauge.Record(ctx, usage[0])
				} else if err != nil {
					slog.WarnContext(ctx, "failed to read cpu usage", "err", err)
				}

				heapGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
				liveObjectsGauge.Record(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
				goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()
}

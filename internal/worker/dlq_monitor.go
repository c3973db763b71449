package worker

// retry_cron.go
// Background goroutine that periodically samples the DLQ depth of every job
// queue into the multilazos_jobs_dlq gauge and logs when it grows.

import (
	"context"
	"time"

	"multilazos/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqTickInterval = 30 * time.Second

// StartDLQMonitor launches a goroutine that ticks every 30s until ctx ends.
func StartDLQMonitor(ctx context.Context, rdb *redis.Client) {
	go func() {
		ticker := time.NewTicker(dlqTickInterval)
		defer ticker.Stop()

		log.Info().Msg("dlq_monitor: started")
		prev := map[string]int64{}
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("dlq_monitor: shutting down")
				return
			case <-ticker.C:
				sampleDLQ(ctx, rdb, prev)
			}
		}
	}()
}

func sampleDLQ(ctx context.Context, rdb *redis.Client, prev map[string]int64) {
	for _, queue := range []string{QueueEtl} {
		n, err := DLQLength(ctx, rdb, queue)
		if err != nil {
			log.Debug().Err(err).Str("queue", queue).Msg("dlq_monitor: redis unavailable, skipping tick")
			continue
		}
		metrics.JobsDLQ.WithLabelValues(queue).Set(float64(n))
		if n > prev[queue] {
			log.Warn().Str("queue", queue).Int64("pending", n).Msg("dlq_monitor: dead letter queue grew")
		}
		prev[queue] = n
	}
}

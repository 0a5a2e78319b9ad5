package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"

	"github.com/muenchow/rustis"
)

// newBenchCmd measures EXISTS round-trip latency against the target
// server and prints the results in Prometheus text exposition format.
func newBenchCmd() *cobra.Command {
	var requests int
	var concurrency int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure command round-trip latency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency < 1 {
				return fmt.Errorf("-c must be at least 1, got %d", concurrency)
			}
			if requests < 1 {
				return fmt.Errorf("-n must be at least 1, got %d", requests)
			}

			client, err := rustis.NewClient(rustis.Config{
				Addrs:    []string{flagAddr},
				MaxConns: int32(concurrency),
			})
			if err != nil {
				return err
			}
			defer client.Close()

			set := metrics.NewSet()
			latency := set.NewHistogram("rustis_bench_latency_seconds")
			errorsTotal := set.NewCounter("rustis_bench_errors_total")

			db := rustis.NewCommands(client)
			perWorker := requests / concurrency

			start := time.Now()
			var wg sync.WaitGroup
			for w := 0; w < concurrency; w++ {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						key := fmt.Sprintf("bench:%d:%d", worker, i)
						ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
						begin := time.Now()
						_, err := db.Exists(ctx, key)
						cancel()
						if err != nil {
							errorsTotal.Inc()
							continue
						}
						latency.UpdateDuration(begin)
					}
				}(w)
			}
			wg.Wait()
			elapsed := time.Since(start)

			completed := perWorker * concurrency
			fmt.Printf("# %d requests, %d workers, %.2fs total, %.0f req/s\n",
				completed, concurrency, elapsed.Seconds(),
				float64(completed)/elapsed.Seconds())
			set.WritePrometheus(os.Stdout)

			stats := client.Stats()
			fmt.Printf("# client commands=%d errors=%d\n", stats.Commands, stats.Errors)
			return nil
		},
	}
	cmd.Flags().IntVar(&requests, "n", 10000, "total number of requests")
	cmd.Flags().IntVar(&concurrency, "c", 8, "number of concurrent workers")
	return cmd
}

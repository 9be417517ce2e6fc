package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/hupe1980/medoids"
	"github.com/hupe1980/medoids/codec"
	"github.com/hupe1980/medoids/dataset"
	"github.com/spf13/cobra"
)

func runCluster(cmd *cobra.Command, args []string) error {
	name := args[0]
	k, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid k %q: %w", args[1], err)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	policy, err := medoids.ParseEmptyClusterPolicy(a.cfg.Cluster.EmptyClusterPolicy)
	if err != nil {
		return err
	}
	out, err := outputCodec(a.cfg.Cluster.Format)
	if err != nil {
		return err
	}

	vecs, err := dataset.Load(ctx, a.store, name, dataset.WithController(a.rc))
	if err != nil {
		return err
	}
	a.logger.WithCount(len(vecs)).DebugContext(ctx, "dataset loaded", "dataset", name)

	metrics := &medoids.BasicMetricsCollector{}
	e, err := medoids.New(vecs, k,
		medoids.WithMaxIterations(a.cfg.Cluster.MaxIterations),
		medoids.WithEmptyClusterPolicy(policy),
		medoids.WithLogger(a.logger),
		medoids.WithMetricsCollector(metrics),
	)
	if err != nil {
		return err
	}

	res, err := e.Run(ctx)
	if err != nil {
		return err
	}

	if withStats, _ := cmd.Flags().GetBool("stats"); withStats {
		stats := metrics.GetStats()
		cache := e.CacheStats()
		a.logger.InfoContext(ctx, "run statistics",
			"iterations", stats.IterationCount,
			"medoid_changes", stats.MedoidChanges,
			"run_nanos", stats.RunAvgNanos,
			"cache_hits", cache.Hits,
			"cache_misses", cache.Misses,
			"cache_entries", cache.Entries,
		)
	}

	if out != nil {
		return codec.Encode(cmd.OutOrStdout(), out, res)
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, c := range res.Assignment {
		fmt.Fprintln(w, c)
	}
	return w.Flush()
}

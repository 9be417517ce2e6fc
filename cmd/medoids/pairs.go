package main

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/medoids/codec"
	"github.com/hupe1980/medoids/pairs"
	"github.com/spf13/cobra"
)

func runPairs(cmd *cobra.Command, args []string) error {
	shards, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid shard count %q: %w", args[0], err)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out, err := outputCodec(a.cfg.Cluster.Format)
	if err != nil {
		return err
	}

	opts := []pairs.Option{
		pairs.WithController(a.rc),
		pairs.WithLogger(a.logger.Logger),
	}
	if name, _ := cmd.Flags().GetString("output"); name != "" {
		opts = append(opts, pairs.WithOutput(name))
	}

	stats, err := pairs.Generate(cmd.Context(), a.store, shards, opts...)
	if err != nil {
		return err
	}

	if out != nil {
		return codec.Encode(cmd.OutOrStdout(), out, stats)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d of %d pairs from %d shards to %s\n",
		stats.Kept, stats.Lines, stats.Shards, stats.Output)
	return err
}

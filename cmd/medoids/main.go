// Package main provides the medoids command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "medoids",
		Short: "Cosine-similarity k-medoids clustering",
		Long: `medoids clusters dense vector datasets into k groups around medoids
chosen by cosine similarity.

Datasets are read from the local file system, Amazon S3 or MinIO, and may be
compressed with zstd, gzip or lz4.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to YAML config file (default ./medoids.yaml or ~/.config/medoids/config.yaml)")
	pf.String("env-file", ".env", "Path to a .env file with MEDOIDS_* variables")
	pf.String("store", "", "Blob store type: local, s3 or minio")
	pf.String("root", "", "Root directory of the local store")
	pf.String("bucket", "", "Bucket of the s3 or minio store")
	pf.String("prefix", "", "Key prefix within the bucket")
	pf.String("endpoint", "", "Endpoint of the minio store or a custom S3 endpoint")
	pf.String("region", "", "Bucket region")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.Int64("io-limit", 0, "Maximum blob read throughput in bytes per second (0 = unlimited)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "medoids v%s (%s)\n", version, commit)
		},
	})

	clusterCmd := &cobra.Command{
		Use:   "cluster <dataset> <k>",
		Short: "Cluster a dataset and print the cluster of every vector",
		Long: `Cluster loads <dataset> from the configured store and partitions it into
<k> clusters. By default one cluster index is printed per line, in dataset
order. With --format json or go-json the medoids, clusters, assignment and
convergence state are printed as a JSON document.`,
		Args: cobra.ExactArgs(2),
		RunE: runCluster,
	}
	clusterCmd.Flags().Int("max-iterations", 0, "Iteration cap, 0 = unbounded (default from config: 1000)")
	clusterCmd.Flags().String("empty-cluster-policy", "", "Empty cluster policy: reseed-farthest or keep-medoid")
	clusterCmd.Flags().String("format", "", "Output format: text, json or go-json")
	clusterCmd.Flags().Bool("stats", false, "Log run and cache statistics")
	rootCmd.AddCommand(clusterCmd)

	pairsCmd := &cobra.Command{
		Use:   "pairs <shards>",
		Short: "Build <shards>.qr.prg from sample/label shard files",
		Long: `Pairs reads "<i>.sample" and "<i>.label" for every shard i in 0..shards-1
from the configured store and writes the pairs whose label is 1 or -1 to
"<shards>.qr.prg".`,
		Args: cobra.ExactArgs(1),
		RunE: runPairs,
	}
	pairsCmd.Flags().String("output", "", "Output blob name (default <shards>.qr.prg)")
	pairsCmd.Flags().String("format", "", "Summary format: text, json or go-json")
	rootCmd.AddCommand(pairsCmd)

	listCmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List the blobs in the configured store",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runList,
	}
	listCmd.Flags().String("format", "", "Output format: text, json or go-json")
	rootCmd.AddCommand(listCmd)

	return rootCmd
}

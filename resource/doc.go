// Package resource bounds memory, worker concurrency and blob IO throughput
// for dataset loading and shard processing.
package resource

// Package pairs prepares query/result pair files from sharded sample and
// label files.
//
// For every shard i the files "<i>.sample" and "<i>.label" hold one integer
// per line. Line j of both files forms a pair; pairs whose label is 1 or -1
// are written as "<sample> <label>" lines to "<shards>.qr.prg", in shard
// order and then line order.
package pairs

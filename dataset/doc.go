// Package dataset reads and writes the dense text vector format consumed by
// the clustering engine.
//
// The format is whitespace separated: the row count m and the column count n,
// followed by m*n floating point values in row-major order.
//
//	4 2
//	1 0
//	1 0
//	0 1
//	0 1
//
// Line breaks carry no meaning. Payloads compressed with zstd, gzip or lz4
// (frame format) are detected by their magic bytes and decompressed
// transparently.
package dataset

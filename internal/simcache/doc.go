// Package simcache memoizes pairwise similarity scores between point indices.
//
// Keys are unordered pairs: Get(i, j) and Get(j, i) address the same entry.
// Entries are never evicted or invalidated; the cache is meant to live as long
// as the immutable dataset it was computed from.
//
// A Cache is not safe for concurrent use.
package simcache

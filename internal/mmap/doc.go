// Package mmap provides read-only memory-mapped file access.
//
//	m, err := mmap.Open("vectors.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// On Unix the file is mapped with mmap(2) and hinted for sequential access.
// On Windows CreateFileMapping/MapViewOfFile is used and hints are no-ops.
//
// Callers must not touch Bytes() after Close returns.
package mmap

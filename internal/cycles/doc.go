// Package cycles enumerates the simple cycles of a topology snapshot.
//
// Enumeration follows Johnson's algorithm: for each start vertex s, in
// snapshot order, it searches the strongly connected component containing s
// within the subgraph of vertices at or after s. Every cycle is therefore
// reported exactly once, rotated so that it starts at its earliest vertex,
// and cycles come out ordered by that start vertex.
//
// The number of simple cycles in a dense graph grows exponentially, so the
// search is bounded by Limits. Hitting a bound is not an error; it is reported
// through Result.Truncated.
package cycles

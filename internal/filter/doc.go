// Package filter computes per-node and per-edge visibility for a graph.
//
// Temporal visibility: an edge is visible at cursor t when its interval is
// at most t; a node is visible when at least one incident edge is. Edges
// without an interval follow a [Policy]. An [Index] precomputes the earliest
// visible time of every node so each evaluation is linear in the graph size.
//
// Keyword highlighting is independent of time, see [Keyword].
package filter

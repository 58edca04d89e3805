// Package depgraph is the static dependency-graph analyzer. It builds a
// producer/consumer multigraph over the registered inspector
// definitions, where vertices are inspectors and edges are (tag,
// producer, consumer) triples derived purely from declared metadata,
// and runs structural analyses over it: unused tags, semantic duplicate
// groups, long dependency chains, and cycle detection.
//
// The analyzer is diagnostic tooling over the declared metadata graph.
// It never touches actual item tag values, and it exists to catch design
// errors in the inspector catalog before a run.
package depgraph

// Package scan provides the traversal and rendering engine behind dirreport.
//
// It walks directory trees using fastwalk for parallel traversal, filters
// regular files by minimum size and extension, aggregates statistics, and
// renders the retained hierarchy as a connector-drawn text tree with
// incremental progress reporting.
package scan

// Package rtree is an in-memory R-tree indexing axis-aligned boxes with
// arbitrary comparable payloads. Entries can be inserted and deleted at any
// time; the tree stays balanced throughout.
//
// Queries return iterators and must not be ranged over while the tree is
// being modified.
package rtree

// Package layout holds the layout blocks of a document page by page, each page
// backed by its own R-tree, and answers the region, nearest and reading order
// queries the extraction pipeline asks of them.
//
// Blocks are read from and written to tab separated files, optionally zstd
// (".zst") or lz4 (".lz4") compressed. Reloading a page means re-inserting its
// blocks; the trees themselves are never persisted.
package layout

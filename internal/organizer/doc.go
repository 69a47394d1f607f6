// Package organizer rewrites a directory of product photos and videos into a
// Brand/Product/Category hierarchy.
//
// Engine.Organize runs six strictly sequential phases over one root: flatten
// same-name nesting, classify the staging area, redistribute the staging area
// into the main tree, classify loose files in brand folders, sweep remaining
// files into category folders, and prune empty directories. Brand, product
// code, and category come from filenames (see internal/naming); destination
// folders are matched against what already exists before new ones are made.
//
// Occupied destinations never lose data: byte-identical duplicates and
// superseded files are moved into "Old Images" quarantine folders with a
// timestamped suffix. Per-file failures are logged and skipped; only a missing
// root fails a run.
package organizer

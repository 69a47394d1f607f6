// Package naming decomposes product photo filenames into brand name, product
// code, and variant tokens, and classifies files into content categories.
//
// Parsing runs an ordered rule table: the most specific structural signal (an
// explicit dotted version number) is tried first, then positional rules keyed
// on the number of tokens. Each rule is a predicate plus a split function so
// the ordering can be audited and tested rule by rule. Classification looks at
// the normalized filename prefix and extension only.
//
// Nothing in this package touches the filesystem.
package naming

// Package textutil provides the normalization primitives used to compare
// filenames and folder names.
//
// The primary use cases are:
//   - Folding brand, product, and category folder names into comparable keys
//   - Normalizing filenames so separator and case differences do not matter
//   - Splitting names into word sets for subset matching
//   - Sanitizing extracted names before they become folder names
//
// All helpers are pure and accept arbitrary Unicode input. Text is NFC
// normalized before comparison so decomposed names (as written by some
// filesystems) compare equal to their composed forms.
package textutil

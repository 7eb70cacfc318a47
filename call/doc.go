// Package call implements the typed variant Call addressed to a state
// object: a tagged union of "descend into a named field" or "invoke a
// terminal method with arguments", nested by field until reaching a leaf.
package call

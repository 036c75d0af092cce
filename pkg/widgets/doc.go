// Package widgets implements the form widgets placed on the fixture page and
// the kind-to-factory registry used to construct them.
package widgets

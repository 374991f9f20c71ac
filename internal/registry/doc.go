// Package registry holds the behavior registry: the mapping from
// (type tag, operation name) to the compiled Go implementation of that
// operation. It is populated once during startup by a single goroutine and
// is read-only afterwards, so dispatch-time lookups need no locking.
package registry

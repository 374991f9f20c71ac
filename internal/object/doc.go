// Package object implements handles: opaque references carrying a type tag
// plus private instance state. A handle's state can only change through
// dispatched operations; the one mutation entry point, Commit, is an
// explicitly granted capability for the dispatcher, not a general escape
// hatch.
package object

// Package dispatch implements the late-binding call path: given a handle
// and an operation name, it resolves the winning behavior from the handle's
// runtime tag, decodes state and arguments into the behavior's Go structs,
// invokes it through reflection, and commits any state mutation back to the
// handle. The call site never knows the concrete type; the tag decides at
// call time.
package dispatch

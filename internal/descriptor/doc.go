// Package descriptor builds the type descriptor set: one descriptor per
// declared type, each holding its ancestry link, its merged attribute
// schema, its merged operation contracts, and a flattened dispatch table
// (the vtable) mapping every resolvable operation to the behavior that wins
// for this type.
//
// The set is constructed once from the loaded model and the populated
// behavior registry, and is immutable afterwards. All chain walking happens
// at build time; Resolve is a single table lookup.
package descriptor

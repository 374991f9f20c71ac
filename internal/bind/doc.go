// Package bind converts between cty values and native Go values. The
// dispatcher uses it to decode handle state and call arguments into a
// behavior's Go structs (guided by `cty` field tags) and to encode handler
// results and mutated state back into cty values.
package bind

// Package memhost is an in-memory host implementing the rig interfaces.
//
// It stands in for the 3D application: a scene of armatures and plain
// objects, per-object interaction modes, pose bones with flags, custom
// properties and constraints, bone collections, and actions holding sampled
// bone poses.
//
// Bake evaluates the pose of every selected, visible bone once per frame.
// With visual keying the bone's constraints are applied first: location
// copies replace the enabled world axes of the bone head, damped tracks turn
// the bone's Y axis toward the subtarget. The evaluator works on rest or
// sampled world positions only; parent propagation is not modelled.
//
// Scenes round-trip through YAML so the command line tool can keep state on
// disk between invocations.
package memhost

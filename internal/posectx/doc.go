// Package posectx forces a skeleton into the state constraint editing and
// baking need, and puts everything back afterwards.
//
// Guard.Enter makes a skeleton the active object in pose mode and returns a
// Snapshot of the previous active object and mode; Guard.Exit restores them.
// Mode restoration is best effort: a mode the skeleton cannot enter is
// logged and ignored, while the previous active object is always restored.
// Guard.Do wraps both around a function so the restore runs on every return
// path, including errors and panics.
//
// EnsureBonesVisible and RestoreBones do the same for bone collection
// visibility and per-bone hidden/selected flags, which the host bake only
// honours for visible, selected bones.
package posectx

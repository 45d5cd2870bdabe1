// Package bake turns live retarget constraints into keyframes.
//
// The orchestrator binds the requested actions, takes the target rig into
// pose mode with every bone shown, selects the target root and each mapped
// control, and asks the host for a visual-keyed pose bake over the source
// action's frame range. Everything it changed is put back before Bake
// returns, in reverse order, whether or not the host bake succeeded.
//
// Source and target bindings are handled differently. A source override is
// always reverted. A target override is kept after a successful bake, so
// the freshly baked action stays on the rig, and reverted after a failure.
package bake

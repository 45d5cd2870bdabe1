// Package synth builds and removes the constraints that make a Rigify rig
// follow a Mixamo skeleton.
//
// Synthesis runs in two steps:
//  1. Plan walks the bone table against the concrete rig pair and produces
//     one operation per constraint, plus info diagnostics for every entry
//     skipped because a bone is missing on either side.
//  2. Apply executes the plan with the target in pose mode: every owner bone
//     loses its previously tagged constraints before the new one is added,
//     so repeated applies never stack constraints.
//
// Every mapped bone except the source root gets a damped track aimed at the
// source bone's tail along its Y axis, in world space. Aiming ignores bone
// roll, so the differing roll conventions of the two rigs cannot introduce
// twist, and limb direction survives differing proportions.
//
// The source root is split in two location copies: the torso takes X and Z,
// the rig root takes Y. No axis is driven twice.
//
// Remove deletes every tagged constraint on the target rig, whichever apply
// created it.
package synth

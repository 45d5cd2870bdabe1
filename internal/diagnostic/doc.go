// Package diagnostic provides structured errors, warnings and notes produced
// while checking a bone correspondence table against a pair of rigs, and while
// planning retarget constraints.
//
// A diagnostic carries a stable code (for example "bone_missing_on_target"),
// the rig it concerns and the bone name, so callers can filter or render them
// without parsing messages.
package diagnostic

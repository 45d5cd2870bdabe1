// Package ikfk switches all Rigify limbs between IK and FK while keeping the
// rig's own per-limb mix recoverable.
//
// Three modes exist. Mixed is whatever blend each limb carries natively; IK
// forces every limb blend to 0 and FK forces it to 1. Leaving Mixed snapshots
// the four blends into State; coming back to Mixed writes them back. Moving
// between IK and FK does not refresh the snapshot.
//
// Transitions only run while the host is in pose mode with a target rig set.
// Otherwise they are skipped and reported as not applied.
package ikfk

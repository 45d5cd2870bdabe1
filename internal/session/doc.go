// Package session drives one retarget session: the source and target rig
// pair of a scene, whether retargeting is on, the IK/FK selector and the
// baked target action.
//
// A Controller is built once per command from the scene's persisted record
// (Restore) and written back afterwards (Snapshot). It owns the IK/FK state
// record and wires the synthesizer, the IK/FK machine and the bake
// orchestrator to the same host.
//
// Operations that need rigs fail with ErrNotConfigured, leaving the session
// untouched. The rig pair and the IK/FK selector are locked while
// retargeting is enabled.
package session

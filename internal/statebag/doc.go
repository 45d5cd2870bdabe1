// Package statebag persists the retarget session of each scene between
// runs.
//
// A Record holds what the host would keep on the scene: the selected rigs
// and actions, whether retargeting is on, the IK/FK selector and the IK/FK
// state machine's record. Records are keyed by scene name, so a scene has
// at most one session.
//
// Two stores are provided. MemoryStore keeps records in a map and suits
// tests. SQLiteStore keeps them in a single SQLite table through the pure
// Go modernc.org/sqlite driver.
package statebag

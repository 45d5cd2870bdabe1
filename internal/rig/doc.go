// Package rig defines the boundary between the retargeting engine and the
// host application that owns the scene graph.
//
// The engine never evaluates poses, solves kinematics or stores keyframes
// itself. It only talks to the host through the interfaces declared here:
//
//   - Object / Skeleton: scene objects, their interaction mode, bones,
//     bone collections and the bound action
//   - Bone: pose-time bone with flags, custom properties and constraints
//   - Action: an animation clip with an inclusive integer frame range
//   - Host: active-object and mode control plus the bake facility
//
// internal/memhost provides an in-memory implementation used by tests and by
// the command line tool.
package rig
